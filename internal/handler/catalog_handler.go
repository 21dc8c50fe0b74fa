package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unicourse/planner-api/internal/dto"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
	"github.com/unicourse/planner-api/pkg/response"
)

type catalogService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*dto.UploadCatalogResponse, error)
	Get(ctx context.Context, datasetID string) (*dto.DatasetSummary, error)
	List(ctx context.Context) ([]dto.DatasetSummary, error)
	Courses(ctx context.Context, datasetID string, query dto.CourseQuery) ([]dto.CourseItem, error)
	Delete(ctx context.Context, datasetID string) error
}

// CatalogHandler exposes dataset ingestion and browsing endpoints.
type CatalogHandler struct {
	service        catalogService
	maxUploadBytes int64
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService, maxUploadBytes int64) *CatalogHandler {
	return &CatalogHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
// @Summary Upload a timetable export
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Timetable CSV or XLSX export"
// @Success 201 {object} response.Envelope
// @Router /catalog [post]
func (h *CatalogHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "multipart field 'file' is required"))
		return
	}
	defer file.Close()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(
			"file of %d bytes exceeds the %d byte limit", header.Size, h.maxUploadBytes)))
		return
	}

	result, err := h.service.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List uploaded datasets
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	datasets, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, datasets)
}

// Get godoc
// @Summary Get a dataset header
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	dataset, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dataset)
}

// Courses godoc
// @Summary List the selectable courses of a dataset
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset ID"
// @Param search query string false "Match against course code or title"
// @Param term query string false "Only courses offered in this term"
// @Param department query string false "Only courses of this department"
// @Param commonCore query bool false "Filter common core courses"
// @Success 200 {object} response.Envelope
// @Router /catalog/{id}/courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	query := dto.CourseQuery{
		Search:     c.Query("search"),
		Term:       c.Query("term"),
		Department: c.Query("department"),
	}
	if raw := c.Query("commonCore"); raw != "" {
		commonCore, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "commonCore must be a boolean"))
			return
		}
		query.CommonCore = &commonCore
	}

	courses, err := h.service.Courses(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"total": len(courses)})
}

// Delete godoc
// @Summary Delete a dataset
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 204
// @Router /catalog/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
