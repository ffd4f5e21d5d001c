package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/store"
	"github.com/aussiebroadwan/inventory/pkg/idx"
)

// VendorService manages vendors on behalf of their owner. Every method
// takes the verified caller; rows owned by anyone else are reported as
// ErrNotFound.
type VendorService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *VendorService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *VendorService) List(ctx context.Context, caller idx.ID) ([]domain.Vendor, error) {
	if caller.IsZero() {
		return nil, ErrAuthentication
	}

	vendors, err := s.Store.Vendors().ListVendorsByUser(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (s *VendorService) Create(ctx context.Context, caller idx.ID, name string) (domain.Vendor, error) {
	if caller.IsZero() {
		return domain.Vendor{}, ErrAuthentication
	}

	name, err := normaliseVendorName(name)
	if err != nil {
		return domain.Vendor{}, err
	}

	now := s.now()
	v := domain.Vendor{
		ID:        idx.NewAt(now),
		UserID:    caller,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Vendors().CreateVendor(ctx, v); err != nil {
		return domain.Vendor{}, fmt.Errorf("create vendor: %w", err)
	}
	return v, nil
}

func (s *VendorService) Get(ctx context.Context, caller idx.ID, rawID string) (domain.Vendor, error) {
	if caller.IsZero() {
		return domain.Vendor{}, ErrAuthentication
	}

	id, err := parseID("vendorID", rawID)
	if err != nil {
		return domain.Vendor{}, err
	}

	return owned(ctx, s.Store.Vendors(), caller, id)
}

func (s *VendorService) Update(ctx context.Context, caller idx.ID, rawID, name string) (domain.Vendor, error) {
	if caller.IsZero() {
		return domain.Vendor{}, ErrAuthentication
	}

	id, err := parseID("vendorID", rawID)
	if err != nil {
		return domain.Vendor{}, err
	}
	name, err = normaliseVendorName(name)
	if err != nil {
		return domain.Vendor{}, err
	}

	var out domain.Vendor
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		v, err := owned(ctx, tx.Vendors(), caller, id)
		if err != nil {
			return err
		}

		now := s.now()
		if err := tx.Vendors().UpdateVendorName(ctx, id, name, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update vendor: %w", err)
		}

		v.Name = name
		v.UpdatedAt = now
		out = v
		return nil
	})
	return out, err
}

func (s *VendorService) Delete(ctx context.Context, caller idx.ID, rawID string) error {
	if caller.IsZero() {
		return ErrAuthentication
	}

	id, err := parseID("vendorID", rawID)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := owned(ctx, tx.Vendors(), caller, id); err != nil {
			return err
		}
		if err := tx.Vendors().DeleteVendor(ctx, id); err != nil {
			return fmt.Errorf("delete vendor: %w", err)
		}
		return nil
	})
}

// owned fetches id and checks it belongs to caller. Absent and foreign
// rows are indistinguishable to the caller.
func owned(ctx context.Context, vendors store.Vendors, caller, id idx.ID) (domain.Vendor, error) {
	v, err := vendors.GetVendor(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Vendor{}, ErrNotFound
		}
		return domain.Vendor{}, fmt.Errorf("get vendor: %w", err)
	}
	if v.UserID != caller {
		return domain.Vendor{}, ErrNotFound
	}
	return v, nil
}
