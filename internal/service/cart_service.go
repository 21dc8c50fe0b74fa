package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/models"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

type cartRepository interface {
	Get(ctx context.Context, hash string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, hash string) error
}

type cartMetrics interface {
	RecordCartLookup(hit bool)
}

// CartService persists selections under the catalog content hash so a
// re-upload of identical data restores them.
type CartService struct {
	carts     cartRepository
	validator *validator.Validate
	metrics   cartMetrics
	logger    *zap.Logger
}

// NewCartService constructs the service.
func NewCartService(carts cartRepository, validate *validator.Validate, metrics cartMetrics, logger *zap.Logger) *CartService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{carts: carts, validator: validate, metrics: metrics, logger: logger}
}

// Save stores the cart under the hash, replacing any previous one.
func (s *CartService) Save(ctx context.Context, hash string, req dto.SaveCartRequest) (*dto.CartResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"invalid cart payload")
	}

	cart := &models.Cart{
		Hash:      hash,
		Selection: toSelection(req.Courses),
		Blockouts: toBlockouts(req.Blockouts),
		SavedAt:   time.Now().UTC(),
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug("cart stored", zap.String("hash", hash), zap.Int("courses", len(cart.Selection)))
	return cartResponse(cart), nil
}

// Get loads the cart stored under the hash.
func (s *CartService) Get(ctx context.Context, hash string) (*dto.CartResponse, error) {
	cart, err := s.carts.Get(ctx, hash)
	if err != nil {
		miss := errors.Is(err, appErrors.ErrCacheMiss) || appErrors.FromError(err).Code == appErrors.ErrCacheMiss.Code
		if s.metrics != nil {
			s.metrics.RecordCartLookup(!miss)
		}
		if miss {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no cart stored for this catalog")
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordCartLookup(true)
	}
	return cartResponse(cart), nil
}

// Delete removes the cart stored under the hash.
func (s *CartService) Delete(ctx context.Context, hash string) error {
	return s.carts.Delete(ctx, hash)
}

func cartResponse(cart *models.Cart) *dto.CartResponse {
	response := &dto.CartResponse{
		Hash:      cart.Hash,
		Courses:   make([]dto.SelectedCourseRequest, 0, len(cart.Selection)),
		Blockouts: make([]dto.BlockoutRequest, 0, len(cart.Blockouts)),
		SavedAt:   cart.SavedAt.UTC().Format(time.RFC3339),
	}
	for _, course := range cart.Selection {
		response.Courses = append(response.Courses, dto.SelectedCourseRequest{
			Code:     course.Code,
			Title:    course.Title,
			Sections: course.Sections,
		})
	}
	for _, blockout := range cart.Blockouts {
		response.Blockouts = append(response.Blockouts, dto.BlockoutRequest{
			ID:       blockout.ID,
			Name:     blockout.Name,
			Day:      blockout.Day,
			StartMin: blockout.StartMin,
			EndMin:   blockout.EndMin,
			ApplyTo:  string(blockout.ApplyTo),
		})
	}
	return response
}
