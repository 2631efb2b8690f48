package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

type stubAuthService struct {
	registerUser *domain.AdminUser
	registerErr  error
	activateUser *domain.AdminUser
	activateErr  error
	loginToken   string
	loginUser    *domain.AdminUser
	loginErr     error
	verifyUser   *domain.AdminUser
	verifyErr    error

	lastRegister ports.RegisterInput
	lastToken    string
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.AdminUser, error) {
	s.lastRegister = input
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Activate(_ context.Context, token string) (*domain.AdminUser, error) {
	s.lastToken = token
	return s.activateUser, s.activateErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.AdminUser, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubAuthService) Verify(_ context.Context, token string) (*domain.AdminUser, error) {
	s.lastToken = token
	return s.verifyUser, s.verifyErr
}

func newAuthTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{registerUser: &domain.AdminUser{ID: "u1", Email: "new@example.com"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"new@example.com","password":"s3cret99"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastRegister.Email != "new@example.com" {
		t.Fatalf("unexpected register input: %+v", svc.lastRegister)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "" {
		t.Fatalf("registration must not issue a session token")
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("expected created user in response, got %+v", resp.User)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(http.MethodPost, "/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"not-an-email","password":"s3cret99"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"dup@example.com","password":"s3cret99"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "jwt-token",
		loginUser:  &domain.AdminUser{ID: "u1", Email: "ada@example.com"},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"s3cret99"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not activated", domain.ErrAccountNotActivated, http.StatusForbidden},
		{"disabled", domain.ErrAccountDisabled, http.StatusForbidden},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{loginErr: tc.err})
			c, rec := newAuthTestContext(http.MethodPost, "/auth/login",
				`{"email":"ada@example.com","password":"s3cret99"}`)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Activate(t *testing.T) {
	svc := &stubAuthService{activateUser: &domain.AdminUser{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodGet, "/auth/activate/tok123", "")
	c.SetParamNames("token")
	c.SetParamValues("tok123")
	if err := h.Activate(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastToken != "tok123" {
		t.Fatalf("expected token forwarded to the service, got %q", svc.lastToken)
	}
	if !strings.Contains(rec.Body.String(), "ada@example.com") {
		t.Fatalf("confirmation page must show the activated account")
	}
}

func TestAuthHandler_Activate_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{activateErr: domain.ErrActivationTokenInvalid})

	c, rec := newAuthTestContext(http.MethodGet, "/auth/activate/expired", "")
	c.SetParamNames("token")
	c.SetParamValues("expired")
	if err := h.Activate(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	svc := &stubAuthService{verifyUser: &domain.AdminUser{ID: "u1", Email: "ada@example.com"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(http.MethodGet, "/auth/verify-token", "")
	c.Request().Header.Set("Authorization", "Bearer session-token")
	if err := h.VerifyToken(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastToken != "session-token" {
		t.Fatalf("expected bearer token forwarded, got %q", svc.lastToken)
	}
}

func TestAuthHandler_VerifyToken_MissingHeader(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(http.MethodGet, "/auth/verify-token", "")
	err := h.VerifyToken(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_VerifyToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{verifyErr: domain.ErrSessionTokenInvalid})

	c, rec := newAuthTestContext(http.MethodGet, "/auth/verify-token", "")
	c.Request().Header.Set("Authorization", "Bearer bad")
	if err := h.VerifyToken(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
