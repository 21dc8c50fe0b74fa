package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/models"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

const cartKeyPrefix = "cart:"

// CartRepository stores selection carts in Redis keyed by the dataset
// content hash. A nil client degrades to a no-op store so the feature can
// be toggled off without touching callers.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCartRepository constructs the repository.
func NewCartRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartRepository{client: client, ttl: ttl, logger: logger}
}

// Get loads the cart stored under the hash.
func (r *CartRepository) Get(ctx context.Context, hash string) (*models.Cart, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, cartKeyPrefix+hash).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get cart %s: %w", hash, err)
	}

	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart %s: %w", hash, err)
	}
	return &cart, nil
}

// Save stores the cart under its hash, refreshing the TTL.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", cart.Hash, err)
	}
	if err := r.client.Set(ctx, cartKeyPrefix+cart.Hash, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart %s: %w", cart.Hash, err)
	}
	r.logger.Debug("cart saved", zap.String("hash", cart.Hash))
	return nil
}

// Delete removes the cart stored under the hash.
func (r *CartRepository) Delete(ctx context.Context, hash string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, cartKeyPrefix+hash).Err(); err != nil {
		return fmt.Errorf("redis delete cart %s: %w", hash, err)
	}
	return nil
}
