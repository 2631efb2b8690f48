package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	Success    bool                      `json:"success"`
	Message    string                    `json:"message,omitempty"`
	Data       *domain.DashboardSnapshot `json:"data"`
	IsDemoData bool                      `json:"isDemoData"`
}

// Stats returns the aggregated dashboard summary. Upstream failures degrade
// the numbers instead of failing the call, so this endpoint always answers
// 200 with best-effort totals and a freshness timestamp.
//
// @Summary      Dashboard statistics
// @Tags         general
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /general/dashboard-stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	snapshot, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Success: true,
		Message: fmt.Sprintf("%d projects, %d files, %d projects indexed (%d%%)",
			snapshot.TotalProjects, snapshot.TotalDocuments,
			snapshot.ProjectsWithIndexing, snapshot.IndexingProgress),
		Data:       snapshot,
		IsDemoData: false,
	})
}
