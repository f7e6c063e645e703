package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/ports"
)

// RedisStore is a Redis implementation of the ChallengeStore interface.
// Entries carry a TTL equal to the challenge lifetime, so Sweep is a no-op;
// the verifier's age check remains authoritative either way.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a new Redis challenge store
func NewRedisStore(client *redis.Client, ttl time.Duration) ports.ChallengeStore {
	return &RedisStore{
		client: client,
		prefix: "drip:challenge:",
		ttl:    ttl,
	}
}

// Put stores a challenge, overwriting any previous one for the same address
func (s *RedisStore) Put(ctx context.Context, ch *core.Challenge) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	key := s.prefix + strings.ToLower(ch.Address)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	return nil
}

// Get retrieves the pending challenge for an address
func (s *RedisStore) Get(ctx context.Context, address string) (*core.Challenge, error) {
	key := s.prefix + strings.ToLower(address)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}

	var ch core.Challenge
	if err := json.Unmarshal(payload, &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return &ch, nil
}

// Delete removes the pending challenge for an address
func (s *RedisStore) Delete(ctx context.Context, address string) error {
	key := s.prefix + strings.ToLower(address)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	return nil
}

// Sweep is a no-op for Redis; key TTLs handle expiry
func (s *RedisStore) Sweep(ctx context.Context, maxAge time.Duration) error {
	return nil
}
