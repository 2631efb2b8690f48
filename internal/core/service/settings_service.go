package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

// SettingsService mutates an admin's own profile and credentials.
type SettingsService struct {
	repo ports.AuthRepository
	log  zerolog.Logger
}

func NewSettingsService(repo ports.AuthRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

// UpdateProfile applies name, email, and avatar changes. A changed email must
// not collide with another account.
func (s *SettingsService) UpdateProfile(ctx context.Context, userID, name, email, avatarColor string) (*domain.AdminUser, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	input := ports.UpdateProfileInput{
		Email:       email,
		AvatarColor: avatarColor,
	}
	if name = strings.TrimSpace(name); name != "" {
		input.FirstName, input.LastName = splitName(name)
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *SettingsService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// splitName divides a display name at the first space: "Ada Lovelace King"
// becomes ("Ada", "Lovelace King").
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
