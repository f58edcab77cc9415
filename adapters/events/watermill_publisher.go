package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/adcpm/sc2/ports"
)

const (
	TopicBroadcast    = "sc2.broadcast"
	TopicScopeGranted = "sc2.scope.granted"
)

// BroadcastEvent announces a successfully relayed operation batch.
type BroadcastEvent struct {
	User       string   `json:"user"`
	ClientID   string   `json:"client_id"`
	Operations []string `json:"operations"`
}

// ScopeGrantedEvent announces a saved scope grant.
type ScopeGrantedEvent struct {
	User     string   `json:"user"`
	ClientID string   `json:"client_id"`
	Scope    []string `json:"scope"`
}

// WatermillPublisher implements the EventPublisher port on a Watermill
// publisher (redis streams in production).
type WatermillPublisher struct {
	publisher message.Publisher
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher wraps a Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishBroadcast publishes a broadcast event.
func (p *WatermillPublisher) PublishBroadcast(ctx context.Context, user, clientID string, operations []string) error {
	return p.publish(TopicBroadcast, BroadcastEvent{
		User:       user,
		ClientID:   clientID,
		Operations: operations,
	})
}

// PublishScopeGranted publishes a scope-granted event.
func (p *WatermillPublisher) PublishScopeGranted(ctx context.Context, user, clientID string, scope []string) error {
	return p.publish(TopicScopeGranted, ScopeGrantedEvent{
		User:     user,
		ClientID: clientID,
		Scope:    scope,
	})
}

func (p *WatermillPublisher) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
