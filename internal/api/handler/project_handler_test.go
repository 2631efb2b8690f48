package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
)

type stubProjectService struct {
	projects []domain.Project
	assets   []domain.Asset
	info     *domain.IndexInfo
	err      error

	uploadedName string
}

func (s *stubProjectService) ListProjects(_ context.Context) ([]domain.Project, error) {
	return s.projects, s.err
}

func (s *stubProjectService) GetProject(_ context.Context, _ string) (*domain.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.projects[0], nil
}

func (s *stubProjectService) CreateProject(_ context.Context, name string) (*domain.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Project{ID: "p1", Name: name}, nil
}

func (s *stubProjectService) ListAssets(_ context.Context, _ string) ([]domain.Asset, error) {
	return s.assets, s.err
}

func (s *stubProjectService) UploadAsset(_ context.Context, _ string, fileName string, content io.Reader) error {
	if s.err != nil {
		return s.err
	}
	s.uploadedName = fileName
	_, _ = io.Copy(io.Discard, content)
	return nil
}

func (s *stubProjectService) DeleteAsset(_ context.Context, _ string, _ string) error {
	return s.err
}

func (s *stubProjectService) IndexInfo(_ context.Context, _ string) (*domain.IndexInfo, error) {
	return s.info, s.err
}

func (s *stubProjectService) PushIndex(_ context.Context, _ string, _ bool) error {
	return s.err
}

func TestProjectHandler_List(t *testing.T) {
	svc := &stubProjectService{projects: []domain.Project{{ID: "p1", Name: "alpha"}}}
	h := NewProjectHandler(svc)

	c, rec := newAuthTestContext(http.MethodGet, "/projects", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var projects []domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestProjectHandler_UpstreamFailureSurfacesAs502(t *testing.T) {
	svc := &stubProjectService{err: domain.ErrUpstreamUnavailable}
	h := NewProjectHandler(svc)

	calls := []struct {
		name string
		run  func(c echo.Context) error
	}{
		{"list", h.List},
		{"get", h.Get},
		{"list assets", h.ListAssets},
		{"index info", h.IndexInfo},
		{"delete asset", h.DeleteAsset},
		{"push index", h.PushIndex},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newAuthTestContext(http.MethodGet, "/projects/p1", "")
			c.SetParamNames("id", "name")
			c.SetParamValues("p1", "a.pdf")
			if err := tc.run(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadGateway {
				t.Fatalf("proxy routes must surface upstream failure, expected 502, got %d", rec.Code)
			}
		})
	}
}

func TestProjectHandler_Create(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, rec := newAuthTestContext(http.MethodPost, "/projects", `{"name":"alpha"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProjectHandler_Create_MissingName(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, rec := newAuthTestContext(http.MethodPost, "/projects", `{}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProjectHandler_UploadAsset(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "report.pdf")
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	part.Write([]byte("pdf-bytes"))
	writer.Close()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/projects/p1/assets", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	svc := &stubProjectService{}
	h := NewProjectHandler(svc)
	if err := h.UploadAsset(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.uploadedName != "report.pdf" {
		t.Fatalf("expected file name forwarded, got %q", svc.uploadedName)
	}
}

func TestProjectHandler_UploadAsset_MissingFile(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})

	c, rec := newAuthTestContext(http.MethodPost, "/projects/p1/assets", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.UploadAsset(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
