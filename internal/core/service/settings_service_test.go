package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asksource/admin-api/internal/core/domain"
)

func TestSettingsService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	user := register(t, authSvc, "nina@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	updated, err := svc.UpdateProfile(context.Background(), user.ID, "Nina Simone Waymon", "nina.s@example.com", "#ff5722")
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FirstName != "Nina" || updated.LastName != "Simone Waymon" {
		t.Fatalf("expected name split at first space, got %q %q", updated.FirstName, updated.LastName)
	}
	if updated.Email != "nina.s@example.com" {
		t.Fatalf("unexpected email: %s", updated.Email)
	}
	if updated.AvatarColor != "#ff5722" {
		t.Fatalf("unexpected avatar color: %s", updated.AvatarColor)
	}
}

func TestSettingsService_UpdateProfile_EmailCollision(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	register(t, authSvc, "taken@example.com")
	user := register(t, authSvc, "olga@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	if _, err := svc.UpdateProfile(context.Background(), user.ID, "", "taken@example.com", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestSettingsService_UpdateProfile_OwnEmailIsNotACollision(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	user := register(t, authSvc, "paul@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	if _, err := svc.UpdateProfile(context.Background(), user.ID, "Paul Dupont", "paul@example.com", ""); err != nil {
		t.Fatalf("keeping the same email must succeed: %v", err)
	}
}

func TestSettingsService_UpdateProfile_UnknownUser(t *testing.T) {
	svc := NewSettingsService(newStubUserRepo(), zerolog.Nop())
	if _, err := svc.UpdateProfile(context.Background(), "missing", "A B", "", ""); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSettingsService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	user := register(t, authSvc, "rita@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	if err := svc.ChangePassword(context.Background(), user.ID, "s3cret99", "newpass1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	stored := repo.users[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass1")) != nil {
		t.Fatalf("stored hash does not match the new password")
	}
}

func TestSettingsService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	user := register(t, authSvc, "sam@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	if err := svc.ChangePassword(context.Background(), user.ID, "wrongpass", "newpass1"); err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestSettingsService_ChangePassword_TooShort(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, &stubNotifier{}, newStubThrottle())
	user := register(t, authSvc, "tom@example.com")

	svc := NewSettingsService(repo, zerolog.Nop())
	if err := svc.ChangePassword(context.Background(), user.ID, "s3cret99", "abc"); err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}
