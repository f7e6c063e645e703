package ports

import "context"

// EventPublisher publishes events to notify other instances
type EventPublisher interface {
	PublishClaim(ctx context.Context, address string, txHash string) error
}
