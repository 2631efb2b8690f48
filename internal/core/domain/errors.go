package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("email already registered")

	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAccountNotActivated = errors.New("account pending activation")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")

	ErrValidation             = errors.New("invalid input")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrWrongPassword          = errors.New("current password is incorrect")
	ErrActivationTokenInvalid = errors.New("activation token invalid or expired")
	ErrSessionTokenInvalid    = errors.New("session token invalid")

	// ErrUpstreamUnavailable wraps any failure talking to the RAG API. Proxy
	// routes surface it; the dashboard aggregation absorbs it.
	ErrUpstreamUnavailable = errors.New("rag api unavailable")
)
