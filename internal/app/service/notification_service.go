package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yhkang/stylehub-backend/pkg/logger"
	"github.com/yhkang/stylehub-backend/pkg/redis"
)

// ProductNotifier announces catalog changes to interested consumers.
// Notifications are fire-and-forget: callers never wait on delivery and a
// failed publish never fails the mutation that triggered it.
type ProductNotifier interface {
	ProductUpdated(productID string)
}

const productUpdatedChannel = "catalog.product.updated"

type productUpdatedEvent struct {
	Event      string `json:"event"`
	ProductID  string `json:"product_id"`
	OccurredAt string `json:"occurred_at"`
}

type redisProductNotifier struct{}

// NewRedisProductNotifier publishes product-updated events over Redis
// pub/sub. Safe to use when Redis is disabled; publishes become no-ops.
func NewRedisProductNotifier() ProductNotifier {
	return &redisProductNotifier{}
}

func (n *redisProductNotifier) ProductUpdated(productID string) {
	if redis.GetClient() == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		payload, err := json.Marshal(productUpdatedEvent{
			Event:      "product_updated",
			ProductID:  productID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			logger.Error("Failed to encode product updated event", err, map[string]interface{}{
				"product_id": productID,
			})
			return
		}

		if err := redis.Publish(ctx, productUpdatedChannel, payload); err != nil {
			logger.Warn("Failed to publish product updated event", map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
		}
	}()
}

// noopNotifier is used in tests and when eventing is switched off.
type noopNotifier struct{}

func NewNoopNotifier() ProductNotifier { return &noopNotifier{} }

func (*noopNotifier) ProductUpdated(string) {}
