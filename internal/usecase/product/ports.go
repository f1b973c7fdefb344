package product

import (
	"context"

	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
)

const (
	TopicProductCreated = "ecommerce.product.created"
	TopicProductUpdated = "ecommerce.product.updated"
	TopicProductDeleted = "ecommerce.product.deleted"

	AggregateTypeProduct = "product"
)

// Cache is a read-through cache of product details. Invalidate must keep
// any version below minVersion from being cached again.
type Cache interface {
	Get(ctx context.Context, id string) (*domainProduct.Product, bool, error)
	Set(ctx context.Context, p *domainProduct.Product) error
	Invalidate(ctx context.Context, id string, minVersion int64) error
}

// EventPublisher emits domain events. Failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error
}

type ProductEventData struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type ProductDeletedData struct {
	ID string `json:"id"`
}
