package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/layer-3/drip/ports"
)

// ClaimEvent represents a completed token claim
type ClaimEvent struct {
	Address string `json:"address"`
	TxHash  string `json:"tx_hash"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "drip.claimed",
	}
}

// PublishClaim publishes a claim event
func (p *WatermillPublisher) PublishClaim(ctx context.Context, address string, txHash string) error {
	event := ClaimEvent{
		Address: address,
		TxHash:  txHash,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
