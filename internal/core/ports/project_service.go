package ports

import (
	"context"
	"io"

	"github.com/asksource/admin-api/internal/core/domain"
)

// ProjectService fronts the RAG API's project and file operations for the
// dashboard client. Unlike the dashboard aggregation, these operations
// surface upstream failures to the caller.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	CreateProject(ctx context.Context, name string) (*domain.Project, error)

	ListAssets(ctx context.Context, projectID string) ([]domain.Asset, error)
	UploadAsset(ctx context.Context, projectID, fileName string, content io.Reader) error
	DeleteAsset(ctx context.Context, projectID, assetName string) error

	IndexInfo(ctx context.Context, projectID string) (*domain.IndexInfo, error)
	PushIndex(ctx context.Context, projectID string, doReset bool) error
}
