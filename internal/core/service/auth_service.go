package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asksource/admin-api/internal/api/metrics"
	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

const (
	bcryptCost        = 12
	minPasswordLength = 6
	defaultAvatar     = "#1976d2"
)

// LoginThrottle abstracts the failed-login counter (Redis). A throttle outage
// must never block a legitimate login, so all errors are advisory.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, activation gating, and login.
type AuthService struct {
	repo          ports.AuthRepository
	notifier      ports.NotificationSender
	throttle      LoginThrottle
	jwtSecret     string
	tokenTTL      time.Duration
	activationTTL time.Duration
	serverURL     string
	log           zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	notifier ports.NotificationSender,
	throttle LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	activationTTL time.Duration,
	serverURL string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if activationTTL <= 0 {
		activationTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:          repo,
		notifier:      notifier,
		throttle:      throttle,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		activationTTL: activationTTL,
		serverURL:     strings.TrimRight(serverURL, "/"),
		log:           log,
	}
}

// Register creates a PENDING account and notifies both the administrator and
// the registrant. It never issues a session token.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.FirstName == "" || input.LastName == "" || email == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrValidation
	}
	if len(input.Password) < minPasswordLength {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrPasswordTooShort
	}

	// Duplicate check before any persistence.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := newActivationToken()
	if err != nil {
		return nil, fmt.Errorf("generate activation token: %w", err)
	}

	now := time.Now().UTC()
	expires := now.Add(s.activationTTL)
	user := &domain.AdminUser{
		Email:                  email,
		PasswordHash:           string(hash),
		FirstName:              strings.TrimSpace(input.FirstName),
		LastName:               strings.TrimSpace(input.LastName),
		Role:                   domain.RoleAdmin,
		IsActive:               false,
		IsActivated:            false,
		ActivationToken:        token,
		ActivationTokenExpires: &expires,
		AvatarColor:            defaultAvatar,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	// Notification failures are logged by the sender and never block the
	// registration response.
	activationURL := s.serverURL + "/auth/activate/" + token
	if err := s.notifier.SendActivationRequest(ctx, created.Email, created.FullName(), activationURL); err != nil {
		s.log.Warn().Err(err).Str("email", created.Email).Msg("activation request notification failed")
	}
	if err := s.notifier.SendRegistrationConfirmation(ctx, created.Email, created.FullName()); err != nil {
		s.log.Warn().Err(err).Str("email", created.Email).Msg("confirmation notification failed")
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("email", created.Email).Msg("admin registration pending activation")
	return created, nil
}

// Activate consumes an activation token. The repository clears the token in
// the same operation that matches it, so a replay of the same link fails with
// ErrActivationTokenInvalid instead of re-activating.
func (s *AuthService) Activate(ctx context.Context, token string) (*domain.AdminUser, error) {
	if token == "" {
		metrics.ActivationsTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrActivationTokenInvalid
	}

	user, err := s.repo.ConsumeActivationToken(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrActivationTokenInvalid) {
			metrics.ActivationsTotal.WithLabelValues("invalid_token").Inc()
		}
		return nil, err
	}

	metrics.ActivationsTotal.WithLabelValues("activated").Inc()
	s.log.Info().Str("email", user.Email).Msg("admin account activated")
	return user, nil
}

// Login checks credentials, then the activation gate, then the disabled
// side-state, updates the last-login timestamp, and issues a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		locked, err := s.throttle.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if locked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown email and wrong password report the same error.
			s.recordFailure(ctx, email)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActivated {
		metrics.LoginsTotal.WithLabelValues("not_activated").Inc()
		return "", nil, domain.ErrAccountNotActivated
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return "", nil, domain.ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", user.Email).Msg("admin logged in")
	return token, user, nil
}

// Verify validates a session token's signature and expiry, loads the
// referenced user, and confirms the account is still admitted.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.AdminUser, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionTokenInvalid
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, domain.ErrSessionTokenInvalid
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive || !user.IsActivated {
		return nil, domain.ErrSessionTokenInvalid
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// newActivationToken returns a 64-character hex string from 32 random bytes.
func newActivationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
