// Package rag implements the typed client for the external RAG content API.
// Every call carries its own bounded timeout and wraps failures with
// domain.ErrUpstreamUnavailable so callers can decide between surfacing and
// absorbing; the API is treated as an opaque, occasionally-unreliable upstream.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asksource/admin-api/internal/api/metrics"
	"github.com/asksource/admin-api/internal/core/domain"
)

const (
	defaultTimeout         = 5 * time.Second
	defaultProjectsTimeout = 10 * time.Second
)

// Config captures the upstream location and call deadlines.
type Config struct {
	// BaseURL is the API root, e.g. http://rag-host/api/v1.
	BaseURL string
	// Timeout bounds every single-project call.
	Timeout time.Duration
	// ProjectsTimeout bounds the project-list call, which the upstream
	// serves slower than single-project lookups.
	ProjectsTimeout time.Duration
}

// Client talks to the RAG API over HTTP/JSON.
type Client struct {
	baseURL         string
	http            *http.Client
	timeout         time.Duration
	projectsTimeout time.Duration
	log             zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	projectsTimeout := cfg.ProjectsTimeout
	if projectsTimeout <= 0 {
		projectsTimeout = defaultProjectsTimeout
	}
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		http:            &http.Client{},
		timeout:         timeout,
		projectsTimeout: projectsTimeout,
		log:             log,
	}
}

// flexID accepts both string and numeric identifiers; the upstream has used
// both across versions.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type projectPayload struct {
	ProjectID flexID `json:"project_id"`
	ID        flexID `json:"id"`
	Name      string `json:"name"`
}

func (p projectPayload) toDomain() domain.Project {
	id := string(p.ProjectID)
	if id == "" {
		id = string(p.ID)
	}
	return domain.Project{ID: id, Name: p.Name}
}

// projectsResponse handles both the envelope form
// {"signal":"PROJECTS_RETRIEVED_SUCCESSFULLY","projects":[...]} and a bare
// array of projects.
type projectsResponse struct {
	Signal   string           `json:"signal"`
	Projects []projectPayload `json:"projects"`
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	body, err := c.get(ctx, c.projectsTimeout, "/data/projects", "projects")
	if err != nil {
		return nil, err
	}

	var envelope projectsResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Projects != nil {
		return toProjects(envelope.Projects), nil
	}

	var bare []projectPayload
	if err := json.Unmarshal(body, &bare); err == nil {
		return toProjects(bare), nil
	}

	metrics.UpstreamErrorsTotal.WithLabelValues("projects").Inc()
	return nil, fmt.Errorf("%w: unexpected project list payload", domain.ErrUpstreamUnavailable)
}

func toProjects(payloads []projectPayload) []domain.Project {
	projects := make([]domain.Project, 0, len(payloads))
	for _, p := range payloads {
		projects = append(projects, p.toDomain())
	}
	return projects
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	body, err := c.get(ctx, c.timeout, "/data/projects/"+url.PathEscape(projectID), "projects")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Project *projectPayload `json:"project"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Project != nil {
		p := envelope.Project.toDomain()
		return &p, nil
	}

	var bare projectPayload
	if err := json.Unmarshal(body, &bare); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("projects").Inc()
		return nil, fmt.Errorf("%w: unexpected project payload", domain.ErrUpstreamUnavailable)
	}
	p := bare.toDomain()
	return &p, nil
}

func (c *Client) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	payload, _ := json.Marshal(map[string]string{"name": name})
	body, err := c.do(ctx, c.timeout, http.MethodPost, "/data/projects", "application/json", bytes.NewReader(payload), "projects")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Project *projectPayload `json:"project"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Project != nil {
		p := envelope.Project.toDomain()
		return &p, nil
	}

	var bare projectPayload
	if err := json.Unmarshal(body, &bare); err != nil || (bare.ID == "" && bare.ProjectID == "") {
		metrics.UpstreamErrorsTotal.WithLabelValues("projects").Inc()
		return nil, fmt.Errorf("%w: unexpected create project payload", domain.ErrUpstreamUnavailable)
	}
	p := bare.toDomain()
	return &p, nil
}

type assetPayload struct {
	AssetName string `json:"asset_name"`
	Name      string `json:"name"`
	Filename  string `json:"filename"`
	AssetSize int64  `json:"asset_size"`
}

func (a assetPayload) fileName() string {
	if a.AssetName != "" {
		return a.AssetName
	}
	if a.Name != "" {
		return a.Name
	}
	return a.Filename
}

// assetsResponse handles both {"signal":...,"assets":[...]} and a bare array.
type assetsResponse struct {
	Signal string         `json:"signal"`
	Assets []assetPayload `json:"assets"`
}

func (c *Client) ListAssets(ctx context.Context, projectID string) ([]domain.Asset, error) {
	body, err := c.get(ctx, c.timeout, "/data/assets/"+url.PathEscape(projectID), "assets")
	if err != nil {
		return nil, err
	}

	var envelope assetsResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Assets != nil {
		return toAssets(envelope.Assets), nil
	}

	var bare []assetPayload
	if err := json.Unmarshal(body, &bare); err == nil {
		return toAssets(bare), nil
	}

	metrics.UpstreamErrorsTotal.WithLabelValues("assets").Inc()
	return nil, fmt.Errorf("%w: unexpected asset list payload", domain.ErrUpstreamUnavailable)
}

func toAssets(payloads []assetPayload) []domain.Asset {
	assets := make([]domain.Asset, 0, len(payloads))
	for _, a := range payloads {
		assets = append(assets, domain.Asset{Name: a.fileName(), Size: a.AssetSize})
	}
	return assets
}

func (c *Client) UploadAsset(ctx context.Context, projectID, fileName string, content io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish upload form: %w", err)
	}

	_, err = c.do(ctx, c.timeout, http.MethodPost, "/data/upload/"+url.PathEscape(projectID),
		writer.FormDataContentType(), &buf, "upload")
	return err
}

func (c *Client) DeleteAsset(ctx context.Context, projectID, assetName string) error {
	path := "/data/delete/" + url.PathEscape(projectID) + "/" + url.PathEscape(assetName)
	_, err := c.do(ctx, c.timeout, http.MethodDelete, path, "", nil, "delete")
	return err
}

// indexInfoResponse carries the collection_info block; different upstream
// versions expose the vector total under different field names.
type indexInfoResponse struct {
	CollectionInfo struct {
		IndexedVectorsCount int64 `json:"indexed_vectors_count"`
		PointsCount         int64 `json:"points_count"`
		VectorsCount        int64 `json:"vectors_count"`
	} `json:"collection_info"`
}

func (c *Client) IndexInfo(ctx context.Context, projectID string) (*domain.IndexInfo, error) {
	body, err := c.get(ctx, c.timeout, "/nlp/index/info/"+url.PathEscape(projectID), "index_info")
	if err != nil {
		return nil, err
	}

	var resp indexInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("index_info").Inc()
		return nil, fmt.Errorf("%w: unexpected index info payload", domain.ErrUpstreamUnavailable)
	}
	return &domain.IndexInfo{
		IndexedVectorsCount: resp.CollectionInfo.IndexedVectorsCount,
		PointsCount:         resp.CollectionInfo.PointsCount,
		VectorsCount:        resp.CollectionInfo.VectorsCount,
	}, nil
}

func (c *Client) PushIndex(ctx context.Context, projectID string, doReset bool) error {
	reset := 0
	if doReset {
		reset = 1
	}
	payload := []byte(`{"do_reset": ` + strconv.Itoa(reset) + `}`)
	_, err := c.do(ctx, c.timeout, http.MethodPost, "/nlp/index/push/"+url.PathEscape(projectID),
		"application/json", bytes.NewReader(payload), "push")
	return err
}

func (c *Client) get(ctx context.Context, timeout time.Duration, path, endpoint string) ([]byte, error) {
	return c.do(ctx, timeout, http.MethodGet, path, "", nil, endpoint)
}

// do performs one bounded upstream call. Transport errors and non-2xx
// statuses both come back wrapped with domain.ErrUpstreamUnavailable.
func (c *Client) do(ctx context.Context, timeout time.Duration, method, path, contentType string, body io.Reader, endpoint string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint).Inc()
		c.log.Debug().Err(err).Str("path", path).Msg("rag api call failed")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint).Inc()
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrUpstreamUnavailable, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint).Inc()
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("rag api returned error status")
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrUpstreamUnavailable, method, path, resp.StatusCode)
	}

	return data, nil
}
