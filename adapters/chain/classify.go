package chain

import (
	"fmt"
	"strings"

	"github.com/layer-3/drip/core"
)

// classifyError maps raw RPC error text onto typed domain errors. Nodes do
// not return structured revert reasons over plain RPC, so substring matching
// is confined to this single boundary.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "already claimed"):
		return core.ErrAlreadyClaimed
	case strings.Contains(msg, "insufficient funds"):
		return core.ErrInsufficientFunds
	default:
		return fmt.Errorf("transaction failed: %w", err)
	}
}
