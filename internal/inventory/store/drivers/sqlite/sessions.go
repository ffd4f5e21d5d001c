package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/pkg/idx"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		s.TokenHash, s.UserID, toMillis(s.ExpiresAt), toMillis(s.CreatedAt),
	)
	return mapConstraint(err)
}

// RedeemSession relies on DELETE ... RETURNING (SQLite 3.35+) so the test
// and the delete are one statement.
func (r *sessionsRepo) RedeemSession(ctx context.Context, tokenHash string) (domain.Session, error) {
	var (
		s                domain.Session
		expires, created int64
	)

	err := r.db.QueryRowContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ? RETURNING token_hash, user_id, expires_at, created_at`,
		tokenHash,
	).Scan(&s.TokenHash, &s.UserID, &expires, &created)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.ExpiresAt = fromMillis(expires)
	s.CreatedAt = fromMillis(created)
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionsRepo) CountSessionsByUser(ctx context.Context, userID idx.ID) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
