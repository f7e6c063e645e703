package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/ports"
)

// MemoryStore is an in-memory implementation of the ChallengeStore interface
type MemoryStore struct {
	challenges map[string]*core.Challenge
	mu         sync.RWMutex
}

// NewMemoryStore creates a new in-memory challenge store
func NewMemoryStore() ports.ChallengeStore {
	return &MemoryStore{
		challenges: make(map[string]*core.Challenge),
	}
}

// Put stores a challenge, overwriting any previous one for the same address
func (s *MemoryStore) Put(ctx context.Context, ch *core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[strings.ToLower(ch.Address)] = ch
	return nil
}

// Get retrieves the pending challenge for an address
func (s *MemoryStore) Get(ctx context.Context, address string) (*core.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.challenges[strings.ToLower(address)]
	if !ok {
		return nil, core.ErrChallengeNotFound
	}

	return ch, nil
}

// Delete removes the pending challenge for an address
func (s *MemoryStore) Delete(ctx context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, strings.ToLower(address))
	return nil
}

// Sweep removes all challenges older than maxAge
func (s *MemoryStore) Sweep(ctx context.Context, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for address, ch := range s.challenges {
		if ch.IssuedAt.Before(cutoff) {
			delete(s.challenges, address)
		}
	}

	return nil
}
