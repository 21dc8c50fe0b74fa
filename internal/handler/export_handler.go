package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/service"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
	"github.com/unicourse/planner-api/pkg/response"
)

type exportService interface {
	Render(req dto.ExportPlanRequest) (*service.ExportResult, error)
}

// ExportHandler streams rendered plan downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export a generated plan as ICS, CSV, or PDF
// @Tags Export
// @Accept json
// @Produce octet-stream
// @Param payload body dto.ExportPlanRequest true "Plan and export options"
// @Success 200 {file} file
// @Router /plans/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"invalid export payload"))
		return
	}

	result, err := h.service.Render(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}
