package ports

import (
	"context"

	"github.com/asksource/admin-api/internal/core/domain"
)

// DashboardService computes the read-only content summary. Stats never fails
// on upstream trouble: unreachable projects contribute zero to the totals.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardSnapshot, error)
}
