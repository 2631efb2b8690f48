package ports

import (
	"context"

	"github.com/asksource/admin-api/internal/core/domain"
)

// SettingsService mutates an admin's own profile.
type SettingsService interface {
	// UpdateProfile applies name/email/avatar changes. Name arrives as a
	// single display string and is split into first and last name.
	UpdateProfile(ctx context.Context, userID, name, email, avatarColor string) (*domain.AdminUser, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
