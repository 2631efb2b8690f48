package ports

import "context"

// MaintenanceService holds one-off administrative operations outside the
// regular dashboard flow.
type MaintenanceService interface {
	// ActivateLegacyAccounts bulk-activates accounts predating the approval
	// gate and returns how many were flipped.
	ActivateLegacyAccounts(ctx context.Context) (int64, error)
}
