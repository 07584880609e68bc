package repository

import (
	"context"

	"github.com/google/uuid"
)

// UserReader is the read-only subset other modules may depend on.
type UserReader interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
}

// AuthRepository defines the interface for user data operations.
// This allows services to depend on an abstraction rather than concrete implementation,
// improving testability and modularity.
type AuthRepository interface {
	UserReader
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
