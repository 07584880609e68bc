// Package adapter provides implementations of external interfaces that other domains need.
// This follows the Anti-Corruption Layer pattern - auth domain provides adapters
// that satisfy consumer-driven interfaces defined by other domains.
package adapter

import (
	"context"
	"errors"

	"autotradespot_backend/internal/auth/repository"
	"autotradespot_backend/internal/listings/ports"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
)

// UserProviderAdapter implements listings/ports.UserProvider using the auth repository.
// This allows the listings domain to reach sellers without depending on auth internals.
type UserProviderAdapter struct {
	repo repository.UserReader
}

// NewUserProviderAdapter creates a new adapter for providing user info to other domains.
func NewUserProviderAdapter(repo repository.UserReader) *UserProviderAdapter {
	return &UserProviderAdapter{repo: repo}
}

// GetUserByID implements ports.UserProvider.
func (a *UserProviderAdapter) GetUserByID(ctx context.Context, userID uuid.UUID) (ports.UserInfo, error) {
	user, err := a.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ports.UserInfo{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return ports.UserInfo{}, err
	}

	return ports.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// GetUserEmail returns the address mail about a user's listings goes to.
func (a *UserProviderAdapter) GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	info, err := a.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return info.Email, nil
}

// Ensure UserProviderAdapter implements ports.UserProvider
var _ ports.UserProvider = (*UserProviderAdapter)(nil)
