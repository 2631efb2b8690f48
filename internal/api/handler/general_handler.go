package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

// GeneralHandler serves user lookups for the dashboard shell.
type GeneralHandler struct {
	repo ports.AuthRepository
}

func NewGeneralHandler(repo ports.AuthRepository) *GeneralHandler {
	return &GeneralHandler{repo: repo}
}

// GetUser returns a single admin's public projection.
//
// @Summary      Get a user by id
// @Tags         general
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.AdminUser
// @Failure      404  {object}  map[string]string
// @Router       /general/user/{id} [get]
func (h *GeneralHandler) GetUser(c echo.Context) error {
	user, err := h.repo.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}
