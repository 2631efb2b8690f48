package ports

import (
	"context"
	"io"

	"github.com/asksource/admin-api/internal/core/domain"
)

// RAGClient is the single typed gateway to the external RAG content API.
// Implementations apply a bounded per-call timeout; callers decide whether a
// failure is surfaced (proxy routes) or absorbed (dashboard aggregation).
type RAGClient interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)

	ListAssets(ctx context.Context, projectID string) ([]domain.Asset, error)
	UploadAsset(ctx context.Context, projectID, fileName string, content io.Reader) error
	DeleteAsset(ctx context.Context, projectID, assetName string) error

	IndexInfo(ctx context.Context, projectID string) (*domain.IndexInfo, error)
	PushIndex(ctx context.Context, projectID string, doReset bool) error
}
