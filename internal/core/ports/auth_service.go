package ports

import (
	"context"

	"github.com/asksource/admin-api/internal/core/domain"
)

// RegisterInput carries a new admin's registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService implements the registration, activation, and login workflow.
// Register never returns a session token: accounts stay PENDING until an
// administrator opens the activation link.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.AdminUser, error)
	Activate(ctx context.Context, token string) (*domain.AdminUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error)
	Verify(ctx context.Context, token string) (*domain.AdminUser, error)
}
