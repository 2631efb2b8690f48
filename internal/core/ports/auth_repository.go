package ports

import (
	"context"
	"time"

	"github.com/asksource/admin-api/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields. Empty strings mean
// "leave unchanged".
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	Email       string
	AvatarColor string
}

// AuthRepository defines persistence for the AdminUser collection.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	FindByID(ctx context.Context, id string) (*domain.AdminUser, error)

	// ConsumeActivationToken atomically looks up a non-expired activation
	// token, flips IsActivated and IsActive, and clears the token. Returns
	// domain.ErrActivationTokenInvalid when no matching token exists, which
	// makes a second consume of the same token fail cleanly.
	ConsumeActivationToken(ctx context.Context, token string, now time.Time) (*domain.AdminUser, error)

	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	CountUsers(ctx context.Context) (int64, error)

	// ActivateLegacy bulk-activates accounts predating the approval gate:
	// anything with a recorded login, or without an activation token at all.
	// Returns the number of accounts modified.
	ActivateLegacy(ctx context.Context) (int64, error)
}
