package services

import (
	"encoding/json"
	"time"

	"stockflow/internal/models"

	"github.com/google/uuid"
)

// Product lifecycle event types, also used as routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product events to a broker.
type EventPublisher interface {
	Publish(routingKey, messageID string, body []byte) error
}

// ProductEvent is the message published after a product changes.
type ProductEvent struct {
	EventID    string                 `json:"eventId"`
	Type       string                 `json:"type"`
	OccurredAt models.LocalDateTime   `json:"occurredAt"`
	Product    models.ProductResponse `json:"product"`
}

func newProductEvent(eventType string, product models.ProductResponse, at time.Time) ProductEvent {
	return ProductEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: models.NewLocalDateTime(at),
		Product:    product,
	}
}

// publish sends the event without failing the caller; the product change is
// already committed when this runs.
func (s *ProductService) publish(eventType string, product models.ProductResponse) {
	if s.publisher == nil {
		s.logger.Debug().Str("event", eventType).Msg("event publisher disabled, skipping")
		return
	}

	event := newProductEvent(eventType, product, s.now())
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.Publish(eventType, event.EventID, body); err != nil {
		s.logger.Warn().Err(err).
			Str("event", eventType).
			Int("productCode", product.ProductCode).
			Msg("failed to publish product event")
		return
	}
	s.logger.Debug().Str("event", eventType).Str("eventId", event.EventID).Msg("published product event")
}
