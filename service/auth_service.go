package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	siwe "github.com/spruceid/siwe-go"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/ports"
)

const signInStatement = "Sign in to Faucet DApp"

// AuthService implements the SIWE handshake: challenge issuance, signature
// verification and session-token validation.
type AuthService struct {
	store     ports.ChallengeStore
	tokenizer ports.Tokenizer

	chainID      int
	challengeTTL time.Duration
	sessionTTL   time.Duration
	log          zerolog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(store ports.ChallengeStore, tokenizer ports.Tokenizer, chainID int, log zerolog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenizer:    tokenizer,
		chainID:      chainID,
		challengeTTL: 10 * time.Minute,
		sessionTTL:   24 * time.Hour,
		log:          log,
	}
}

// IssueChallenge builds a canonical sign-in message for the address and
// records it as the pending challenge, replacing any previous one.
func (s *AuthService) IssueChallenge(ctx context.Context, address, domain, origin string) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", fmt.Errorf("%w: address is required", core.ErrInvalidMessage)
	}

	nonce := siwe.GenerateNonce()

	msg, err := siwe.InitMessage(domain, address, origin, nonce, map[string]interface{}{
		"statement": signInStatement,
		"chainId":   s.chainID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build sign-in message: %w", err)
	}

	text := msg.String()

	challenge := &core.Challenge{
		Address:  strings.ToLower(address),
		Message:  text,
		Nonce:    nonce,
		IssuedAt: time.Now(),
	}

	if err := s.store.Put(ctx, challenge); err != nil {
		return "", fmt.Errorf("failed to store challenge: %w", err)
	}

	// Opportunistic housekeeping; the age check in Verify is authoritative.
	if err := s.store.Sweep(ctx, s.challengeTTL); err != nil {
		s.log.Warn().Err(err).Msg("challenge sweep failed")
	}

	return text, nil
}

// Verify checks a signed challenge and mints a session token. The pending
// entry is single-use: it is deleted on success, on expiry, and the stored
// message text is the sole source of truth for what was legitimately issued.
func (s *AuthService) Verify(ctx context.Context, message, signature string) (string, string, error) {
	msg, err := siwe.ParseMessage(message)
	if err != nil {
		return "", "", core.ErrInvalidMessage
	}

	address := msg.GetAddress().Hex()
	key := strings.ToLower(address)

	pending, err := s.store.Get(ctx, key)
	if err != nil {
		return "", "", err
	}

	// A newer challenge for the same address overwrites the old one; the
	// old message can no longer be completed.
	if pending.Message != message {
		return "", "", core.ErrChallengeNotFound
	}

	if time.Since(pending.IssuedAt) > s.challengeTTL {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("address", key).Msg("failed to delete expired challenge")
		}
		return "", "", core.ErrChallengeExpired
	}

	if _, err := msg.Verify(signature, nil, nil, nil); err != nil {
		return "", "", core.ErrInvalidSignature
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return "", "", fmt.Errorf("failed to consume challenge: %w", err)
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   address,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return "", "", fmt.Errorf("failed to create session token: %w", err)
	}

	s.log.Info().Str("address", address).Msg("sign-in verified")

	return token, address, nil
}

// ValidateToken checks a bearer token and returns the embedded session
func (s *AuthService) ValidateToken(token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrTokenMissing
	}

	return s.tokenizer.TokenToSession(token)
}
