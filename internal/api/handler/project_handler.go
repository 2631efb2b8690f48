package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

// ProjectHandler fronts the RAG API's project and file operations. Unlike the
// dashboard aggregation, these routes surface upstream failures as 502 so the
// client can show the real problem.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

type pushIndexRequest struct {
	DoReset bool `json:"doReset"`
}

// List returns all projects held by the RAG platform.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Failure      502  {object}  map[string]string
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Get returns one project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      502  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Create registers a new project upstream.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	project, err := h.service.CreateProject(c.Request().Context(), req.Name)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// ListAssets returns a project's files.
//
// @Summary      List a project's files
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Asset
// @Failure      502  {object}  map[string]string
// @Router       /projects/{id}/assets [get]
func (h *ProjectHandler) ListAssets(c echo.Context) error {
	assets, err := h.service.ListAssets(c.Request().Context(), c.Param("id"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

// UploadAsset forwards a multipart file upload to the RAG API.
//
// @Summary      Upload a file to a project
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Project id"
// @Param        file  formData  file    true  "File to upload"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /projects/{id}/assets [post]
func (h *ProjectHandler) UploadAsset(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file"})
	}
	defer src.Close()

	if err := h.service.UploadAsset(c.Request().Context(), c.Param("id"), fileHeader.Filename, src); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "file uploaded"})
}

// DeleteAsset removes a file from a project.
//
// @Summary      Delete a project file
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Project id"
// @Param        name  path      string  true  "Asset name"
// @Success      200   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /projects/{id}/assets/{name} [delete]
func (h *ProjectHandler) DeleteAsset(c echo.Context) error {
	if err := h.service.DeleteAsset(c.Request().Context(), c.Param("id"), c.Param("name")); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted"})
}

// IndexInfo returns a project's vector-index state.
//
// @Summary      Get a project's index info
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.IndexInfo
// @Failure      502  {object}  map[string]string
// @Router       /projects/{id}/index [get]
func (h *ProjectHandler) IndexInfo(c echo.Context) error {
	info, err := h.service.IndexInfo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

// PushIndex asks the RAG API to (re)index a project's content.
//
// @Summary      Trigger indexing for a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true   "Project id"
// @Param        body  body      pushIndexRequest  false  "Index options"
// @Success      202   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /projects/{id}/index/push [post]
func (h *ProjectHandler) PushIndex(c echo.Context) error {
	var req pushIndexRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.service.PushIndex(c.Request().Context(), c.Param("id"), req.DoReset); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "indexing started"})
}

func upstreamError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "rag api unavailable"})
	}
	return err
}
