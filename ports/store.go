package ports

import (
	"context"
	"time"

	"github.com/layer-3/drip/core"
)

// ChallengeStore holds pending sign-in challenges keyed by lower-cased address.
// Put overwrites any existing entry for the same address. Sweep is best-effort
// housekeeping; the verifier performs its own authoritative age check.
type ChallengeStore interface {
	Put(ctx context.Context, ch *core.Challenge) error
	Get(ctx context.Context, address string) (*core.Challenge, error)
	Delete(ctx context.Context, address string) error
	Sweep(ctx context.Context, maxAge time.Duration) error
}
