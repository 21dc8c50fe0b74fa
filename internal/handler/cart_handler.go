package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicourse/planner-api/internal/dto"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
	"github.com/unicourse/planner-api/pkg/response"
)

type cartService interface {
	Save(ctx context.Context, hash string, req dto.SaveCartRequest) (*dto.CartResponse, error)
	Get(ctx context.Context, hash string) (*dto.CartResponse, error)
	Delete(ctx context.Context, hash string) error
}

// CartHandler exposes the persisted selection cart.
type CartHandler struct {
	service cartService
}

// NewCartHandler builds a new handler.
func NewCartHandler(service cartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get godoc
// @Summary Load the cart stored under a catalog hash
// @Tags Cart
// @Produce json
// @Param hash path string true "Catalog content hash"
// @Success 200 {object} response.Envelope
// @Router /cart/{hash} [get]
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.service.Get(c.Request.Context(), c.Param("hash"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cart)
}

// Put godoc
// @Summary Store a cart under a catalog hash
// @Tags Cart
// @Accept json
// @Produce json
// @Param hash path string true "Catalog content hash"
// @Param payload body dto.SaveCartRequest true "Selection and blockouts"
// @Success 200 {object} response.Envelope
// @Router /cart/{hash} [put]
func (h *CartHandler) Put(c *gin.Context) {
	var req dto.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"invalid cart payload"))
		return
	}

	cart, err := h.service.Save(c.Request.Context(), c.Param("hash"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cart)
}

// Delete godoc
// @Summary Delete the cart stored under a catalog hash
// @Tags Cart
// @Param hash path string true "Catalog content hash"
// @Success 204
// @Router /cart/{hash} [delete]
func (h *CartHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("hash")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
