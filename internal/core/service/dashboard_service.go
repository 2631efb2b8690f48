package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/asksource/admin-api/internal/api/metrics"
	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

// DashboardService aggregates the external RAG platform's content into a
// per-request snapshot. Upstream failures are absorbed: a project that cannot
// be reached contributes zero to every total and the response still succeeds.
type DashboardService struct {
	rag   ports.RAGClient
	users ports.AuthRepository
	log   zerolog.Logger
}

func NewDashboardService(rag ports.RAGClient, users ports.AuthRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{rag: rag, users: users, log: log}
}

// projectStats is the per-project contribution collected by the fan-out.
type projectStats struct {
	files     int
	histogram map[domain.FileCategory]int
	indexed   int64
}

// Stats lists projects, fans out one goroutine per project for its asset list
// and index info, and folds the results into a DashboardSnapshot. The RAG
// client bounds every sub-call with its own timeout, so one dead project
// cannot stall the rest.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardSnapshot, error) {
	started := time.Now()
	defer func() {
		metrics.DashboardAggregationDuration.Observe(time.Since(started).Seconds())
	}()

	projects, err := s.rag.ListProjects(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("project list unreachable, reporting empty dashboard")
		projects = nil
	}

	results := make(chan projectStats, len(projects))
	for _, p := range projects {
		go func(p domain.Project) {
			results <- s.collect(ctx, p)
		}(p)
	}

	totalDocuments := 0
	var totalIndexed int64
	projectsWithIndexing := 0
	distribution := make(map[domain.FileCategory]int)
	for range projects {
		ps := <-results
		totalDocuments += ps.files
		totalIndexed += ps.indexed
		if ps.indexed > 0 {
			projectsWithIndexing++
		}
		for cat, n := range ps.histogram {
			distribution[cat] += n
		}
	}

	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to count admin users")
		totalUsers = 0
	}

	totalProjects := len(projects)
	indexingProgress := 0
	if totalProjects > 0 {
		indexingProgress = roundPercent(projectsWithIndexing, totalProjects)
	}

	percentages := make(map[domain.FileCategory]int, len(distribution))
	pie := make([]domain.PieSlice, 0, len(distribution))
	for cat, n := range distribution {
		pct := 0
		if totalDocuments > 0 {
			pct = roundPercent(n, totalDocuments)
		}
		percentages[cat] = pct
		pie = append(pie, domain.PieSlice{Name: cat.Label(), Value: n, Percentage: pct})
	}

	averageFiles := 0
	if totalProjects > 0 {
		averageFiles = int(math.Round(float64(totalDocuments) / float64(totalProjects)))
	}

	return &domain.DashboardSnapshot{
		TotalProjects:          totalProjects,
		TotalDocuments:         totalDocuments,
		TotalIndexedDocuments:  totalIndexed,
		TotalUsers:             totalUsers,
		ActiveProjects:         totalProjects,
		ProjectsWithIndexing:   projectsWithIndexing,
		IndexingProgress:       indexingProgress,
		FileTypeDistribution:   distribution,
		FileTypePercentages:    percentages,
		AverageFilesPerProject: averageFiles,
		SystemHealth:           domain.SystemHealth(indexingProgress),
		LastUpdated:            time.Now().UTC(),
		PieChartData:           pie,
	}, nil
}

// collect gathers one project's file histogram and indexed-vector count.
// Each sub-call failure is logged and degrades to zero for that project.
func (s *DashboardService) collect(ctx context.Context, p domain.Project) projectStats {
	ps := projectStats{histogram: make(map[domain.FileCategory]int)}

	assets, err := s.rag.ListAssets(ctx, p.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", p.ID).Msg("asset list failed, project counts as empty")
	} else {
		ps.files = len(assets)
		for _, a := range assets {
			ps.histogram[domain.ClassifyFileName(a.Name)]++
		}
	}

	info, err := s.rag.IndexInfo(ctx, p.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", p.ID).Msg("index info failed, project counts as unindexed")
	} else {
		ps.indexed = info.IndexedCount()
	}

	return ps
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
