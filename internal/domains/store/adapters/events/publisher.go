// Package events announces committed store activity on the message
// broker for the notification worker to pick up.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	"github.com/Ssshtea/DBMS-cp/internal/platform/rabbitmq"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher sends order events to the broker as JSON.
type Publisher struct {
	client *rabbitmq.Client
}

// NewPublisher wraps the broker client.
func NewPublisher(client *rabbitmq.Client) *Publisher {
	return &Publisher{client: client}
}

// OrderPlaced publishes one committed placement.
func (p *Publisher) OrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	return p.client.Publish(ctx, body)
}
