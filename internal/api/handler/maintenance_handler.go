package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/ports"
)

// MaintenanceHandler exposes one-off administrative operations.
type MaintenanceHandler struct {
	service ports.MaintenanceService
}

func NewMaintenanceHandler(svc ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: svc}
}

// ActivateLegacy bulk-activates accounts created before the approval gate.
//
// @Summary      Activate legacy accounts
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /maintenance/activate-legacy [post]
func (h *MaintenanceHandler) ActivateLegacy(c echo.Context) error {
	activated, err := h.service.ActivateLegacyAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"activated": activated,
	})
}
