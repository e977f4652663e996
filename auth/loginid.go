package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skygeario/skygear-go/skyerr"
)

// AddLoginIDs attaches additional login identifiers to the current
// user. Each identifier is validated before any network call.
func (s *Service) AddLoginIDs(ctx context.Context, loginIDs []LoginID) error {
	if err := validateLoginIDs(loginIDs); err != nil {
		return err
	}
	_, err := s.post(ctx, "/_auth/login_id/add", map[string]any{
		"login_ids": loginIDs,
	})
	return err
}

// RemoveLoginIDs detaches login identifiers from the current user.
func (s *Service) RemoveLoginIDs(ctx context.Context, loginIDs []LoginID) error {
	if err := validateLoginIDs(loginIDs); err != nil {
		return err
	}
	_, err := s.post(ctx, "/_auth/login_id/remove", map[string]any{
		"login_ids": loginIDs,
	})
	return err
}

// UpdateLoginID replaces one login identifier with another and returns
// the updated user.
func (s *Service) UpdateLoginID(ctx context.Context, oldLoginID, newLoginID LoginID) (*User, error) {
	if err := oldLoginID.validate(); err != nil {
		return nil, err
	}
	if err := newLoginID.validate(); err != nil {
		return nil, err
	}

	raw, err := s.post(ctx, "/_auth/login_id/update", map[string]any{
		"old_login_id": oldLoginID,
		"new_login_id": newLoginID,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return result.User, nil
}

func validateLoginIDs(loginIDs []LoginID) error {
	if len(loginIDs) == 0 {
		return ErrInvalidLoginID
	}
	for _, loginID := range loginIDs {
		if err := loginID.validate(); err != nil {
			return err
		}
	}
	return nil
}
