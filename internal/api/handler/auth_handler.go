package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string            `json:"message,omitempty"`
	Token   string            `json:"token,omitempty"`
	User    *domain.AdminUser `json:"user,omitempty"`
}

// Register creates a new pending admin account.
//
// @Summary      Register a new admin account
// @Description  The account stays pending until an administrator opens the emailed activation link. No session token is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrPasswordTooShort):
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "registration received, pending administrator review",
		User:    user,
	})
}

// Login authenticates an activated admin and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, domain.ErrAccountNotActivated), errors.Is(err, domain.ErrAccountDisabled):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrTooManyAttempts):
			status = http.StatusTooManyRequests
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Activate consumes an activation token. The endpoint is opened directly from
// the notification email, so it renders HTML rather than JSON.
//
// @Summary      Activate a pending account
// @Tags         auth
// @Produce      html
// @Param        token  path  string  true  "Activation token"
// @Success      200  {string}  string  "Confirmation page"
// @Failure      400  {string}  string  "Invalid or expired token page"
// @Router       /auth/activate/{token} [get]
func (h *AuthHandler) Activate(c echo.Context) error {
	user, err := h.authService.Activate(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrActivationTokenInvalid) {
			return c.HTML(http.StatusBadRequest, activationErrorPage)
		}
		return c.HTML(http.StatusInternalServerError, activationErrorPage)
	}
	return c.HTML(http.StatusOK, activationSuccessPage(user.FullName(), user.Email))
}

// VerifyToken validates the presented session token and returns the user.
//
// @Summary      Verify a session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Verify(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrSessionTokenInvalid.Error()})
	}

	return c.JSON(http.StatusOK, authResponse{User: user})
}

// Logout acknowledges a logout. Sessions are stateless JWTs, so the client
// simply discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}
