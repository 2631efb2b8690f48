package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

// ProjectService fronts the RAG API's project and file operations. It is a
// thin pass-through: unlike the dashboard aggregation, upstream failures here
// reach the caller so the client can show the real error.
type ProjectService struct {
	rag ports.RAGClient
	log zerolog.Logger
}

func NewProjectService(rag ports.RAGClient, log zerolog.Logger) *ProjectService {
	return &ProjectService{rag: rag, log: log}
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.rag.ListProjects(ctx)
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.rag.GetProject(ctx, projectID)
}

func (s *ProjectService) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	project, err := s.rag.CreateProject(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("project_id", project.ID).Msg("project created")
	return project, nil
}

func (s *ProjectService) ListAssets(ctx context.Context, projectID string) ([]domain.Asset, error) {
	return s.rag.ListAssets(ctx, projectID)
}

func (s *ProjectService) UploadAsset(ctx context.Context, projectID, fileName string, content io.Reader) error {
	if err := s.rag.UploadAsset(ctx, projectID, fileName, content); err != nil {
		return err
	}
	s.log.Info().Str("project_id", projectID).Str("file", fileName).Msg("asset uploaded")
	return nil
}

func (s *ProjectService) DeleteAsset(ctx context.Context, projectID, assetName string) error {
	if err := s.rag.DeleteAsset(ctx, projectID, assetName); err != nil {
		return err
	}
	s.log.Info().Str("project_id", projectID).Str("file", assetName).Msg("asset deleted")
	return nil
}

func (s *ProjectService) IndexInfo(ctx context.Context, projectID string) (*domain.IndexInfo, error) {
	return s.rag.IndexInfo(ctx, projectID)
}

func (s *ProjectService) PushIndex(ctx context.Context, projectID string, doReset bool) error {
	if err := s.rag.PushIndex(ctx, projectID, doReset); err != nil {
		return err
	}
	s.log.Info().Str("project_id", projectID).Bool("reset", doReset).Msg("index push triggered")
	return nil
}
