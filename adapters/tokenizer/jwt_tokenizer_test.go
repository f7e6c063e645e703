package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/drip/core"
)

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestJWTTokenizer_RoundTrip(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		IssuedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	token, err := tok.SessionToToken(session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tok.TokenToSession(token)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, session.Address, got.Address)
	require.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestJWTTokenizer_Expired(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		IssuedAt:  time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	token, err := tok.SessionToToken(session)
	require.NoError(t, err)

	_, err = tok.TokenToSession(token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTTokenizer_Garbage(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	_, err := tok.TokenToSession("not.a.jwt")
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestJWTTokenizer_WrongKey(t *testing.T) {
	signer := NewJWTTokenizer(newTestKey(t))
	verifier := NewJWTTokenizer(newTestKey(t))

	now := time.Now()
	token, err := signer.SessionToToken(&core.Session{
		ID:        uuid.New().String(),
		Address:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = verifier.TokenToSession(token)
	require.ErrorIs(t, err, core.ErrInvalidToken)
}
