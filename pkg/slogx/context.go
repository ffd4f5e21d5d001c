package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type ctxKey struct{}

type annotationsKey struct{}

// annotations collects attributes added by inner handlers so the access
// log line written by HTTPMiddleware can include them.
type annotations struct {
	mu    sync.Mutex
	attrs []any
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or the default logger outside a
// request.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// Annotate adds attrs to the request logger and to the access log line of
// the enclosing HTTPMiddleware, if any.
func Annotate(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}

	if a, ok := ctx.Value(annotationsKey{}).(*annotations); ok {
		a.mu.Lock()
		a.attrs = append(a.attrs, args...)
		a.mu.Unlock()
	}

	return WithContext(ctx, FromContext(ctx).With(args...))
}

func withAnnotations(ctx context.Context) (context.Context, *annotations) {
	a := &annotations{}
	return context.WithValue(ctx, annotationsKey{}, a), a
}

func (a *annotations) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.attrs...)
}
