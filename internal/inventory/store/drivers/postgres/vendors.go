package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/store"
	"github.com/aussiebroadwan/inventory/pkg/idx"
)

type vendorsRepo struct {
	db dbtx
}

func (r *vendorsRepo) CreateVendor(ctx context.Context, v domain.Vendor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, user_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.UserID, v.Name, v.CreatedAt, v.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *vendorsRepo) GetVendor(ctx context.Context, id idx.ID) (domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM vendors WHERE id = $1`, id,
	).Scan(&v.ID, &v.UserID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Vendor{}, mapNotFound(err)
	}
	return utcVendor(v), nil
}

func (r *vendorsRepo) ListVendorsByUser(ctx context.Context, userID idx.ID) ([]domain.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM vendors WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Vendor{}
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, utcVendor(v))
	}
	return out, rows.Err()
}

func (r *vendorsRepo) UpdateVendorName(ctx context.Context, id idx.ID, name string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET name = $1, updated_at = $2 WHERE id = $3`, name, at, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *vendorsRepo) DeleteVendor(ctx context.Context, id idx.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	return err
}

func utcVendor(v domain.Vendor) domain.Vendor {
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v
}
