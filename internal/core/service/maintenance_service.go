package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/asksource/admin-api/internal/core/ports"
)

// MaintenanceService holds one-off administrative operations that are not
// part of the regular dashboard flow.
type MaintenanceService struct {
	repo ports.AuthRepository
	log  zerolog.Logger
}

func NewMaintenanceService(repo ports.AuthRepository, log zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{repo: repo, log: log}
}

// ActivateLegacyAccounts bulk-activates accounts created before the approval
// gate existed: anything with a recorded login, or with no activation token
// at all. Returns how many accounts were flipped.
func (s *MaintenanceService) ActivateLegacyAccounts(ctx context.Context) (int64, error) {
	n, err := s.repo.ActivateLegacy(ctx)
	if err != nil {
		return 0, fmt.Errorf("activate legacy accounts: %w", err)
	}
	s.log.Info().Int64("activated", n).Msg("legacy accounts activated")
	return n, nil
}
