package service

import (
	"context"
	"time"
)

// Catalog event types published to downstream consumers.
const (
	EventTypeProductCreated = "catalog.product.created"
	EventTypeRatingCreated  = "catalog.rating.created"
)

// CatalogEvent describes a change to the product catalog.
type CatalogEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
}

// EventPublisher pushes catalog events to a message broker. Publishing is
// best-effort: catalog writes succeed even when the broker is unavailable.
type EventPublisher interface {
	// PublishCatalogEvent publishes a single catalog event.
	PublishCatalogEvent(ctx context.Context, event *CatalogEvent) error

	// Close releases broker resources.
	Close() error
}
