package sqlite

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

const vendorColumns = `id, user_id, name, created_at, updated_at`

func (r *vendorsRepo) CreateVendor(ctx context.Context, v domain.Vendor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (`+vendorColumns+`) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.Name, toMillis(v.CreatedAt), toMillis(v.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *vendorsRepo) GetVendor(ctx context.Context, id idx.ID) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id))
}

func (r *vendorsRepo) ListVendorsByUser(ctx context.Context, userID idx.ID) ([]domain.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *vendorsRepo) UpdateVendorName(ctx context.Context, id idx.ID, name string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET name = ?, updated_at = ? WHERE id = ?`, name, toMillis(at), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *vendorsRepo) DeleteVendor(ctx context.Context, id idx.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	return err
}

func scanVendor(row rowScanner) (domain.Vendor, error) {
	var (
		v                domain.Vendor
		created, updated int64
	)
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &created, &updated); err != nil {
		return domain.Vendor{}, mapNotFound(err)
	}
	v.CreatedAt = fromMillis(created)
	v.UpdatedAt = fromMillis(updated)
	return v, nil
}
