package service

import "github.com/prometheus/client_golang/prometheus"

// Reasons a session pair is issued.
const (
	ReasonLogin   = "login"
	ReasonSignup  = "signup"
	ReasonRefresh = "refresh"
)

// SessionMetrics counts session lifecycle events. A nil *SessionMetrics
// records nothing.
type SessionMetrics struct {
	issued          *prometheus.CounterVec
	loginFailures   prometheus.Counter
	refreshFailures prometheus.Counter
	logouts         prometheus.Counter
	purged          prometheus.Counter
}

func NewSessionMetrics(namespace string, reg prometheus.Registerer) *SessionMetrics {
	m := &SessionMetrics{
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "issued_total",
			Help:      "Session pairs issued by reason.",
		}, []string{"reason"}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts.",
		}),
		refreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "refresh_failures_total",
			Help:      "Rejected refresh attempts.",
		}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "logouts_total",
			Help:      "Logout requests.",
		}),
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "expired_purged_total",
			Help:      "Expired session rows removed by housekeeping.",
		}),
	}

	reg.MustRegister(m.issued, m.loginFailures, m.refreshFailures, m.logouts, m.purged)
	return m
}

func (m *SessionMetrics) issuedFor(reason string) {
	if m != nil {
		m.issued.WithLabelValues(reason).Inc()
	}
}

func (m *SessionMetrics) loginFailed() {
	if m != nil {
		m.loginFailures.Inc()
	}
}

func (m *SessionMetrics) refreshFailed() {
	if m != nil {
		m.refreshFailures.Inc()
	}
}

func (m *SessionMetrics) loggedOut() {
	if m != nil {
		m.logouts.Inc()
	}
}

func (m *SessionMetrics) purgedRows(n int64) {
	if m != nil && n > 0 {
		m.purged.Add(float64(n))
	}
}
