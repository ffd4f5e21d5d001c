package authsdk

import "context"

func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out *MeResponse
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.Me(ctx, token)
		return err
	})
	return out, err
}

// GetUser fetches a profile with the held token attached, so Self is
// reported for the caller's own account.
func (s *Session) GetUser(ctx context.Context, username string) (*UserProfile, error) {
	var out *UserProfile
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.GetUser(ctx, token, username)
		return err
	})
	return out, err
}

// DeleteAccount deletes the caller's account and clears the store.
func (s *Session) DeleteAccount(ctx context.Context, username string) error {
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		return s.client.DeleteUser(ctx, token, username)
	})
	if err != nil {
		return err
	}
	return s.store.Clear()
}

func (s *Session) ListVendors(ctx context.Context) ([]Vendor, error) {
	var out []Vendor
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.ListVendors(ctx, token)
		return err
	})
	return out, err
}

func (s *Session) CreateVendor(ctx context.Context, name string) (*Vendor, error) {
	var out *Vendor
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.CreateVendor(ctx, token, name)
		return err
	})
	return out, err
}

func (s *Session) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	var out *Vendor
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.GetVendor(ctx, token, id)
		return err
	})
	return out, err
}

func (s *Session) UpdateVendor(ctx context.Context, id, name string) (*Vendor, error) {
	var out *Vendor
	err := s.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.client.UpdateVendor(ctx, token, id, name)
		return err
	})
	return out, err
}

func (s *Session) DeleteVendor(ctx context.Context, id string) error {
	return s.Do(ctx, func(ctx context.Context, token string) error {
		return s.client.DeleteVendor(ctx, token, id)
	})
}
