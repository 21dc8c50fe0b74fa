package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicourse/planner-api/internal/dto"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
	"github.com/unicourse/planner-api/pkg/response"
)

type plannerService interface {
	GeneratePlans(ctx context.Context, req dto.GeneratePlansRequest) (*dto.GeneratePlansResponse, error)
}

// PlannerHandler exposes the schedule generation endpoint.
type PlannerHandler struct {
	service plannerService
}

// NewPlannerHandler builds a new handler.
func NewPlannerHandler(service plannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

// Generate godoc
// @Summary Generate every feasible conflict-free schedule
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlansRequest true "Selection, terms, and blockouts"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /plans/generate [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"invalid generation payload"))
		return
	}

	result, err := h.service.GeneratePlans(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
