package core

import "errors"

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeExpired  = errors.New("challenge has expired")
	ErrInvalidMessage    = errors.New("invalid sign-in message")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrTokenMissing      = errors.New("token not provided")
	ErrTokenExpired      = errors.New("token has expired")
	ErrInvalidToken      = errors.New("invalid token")

	ErrAlreadyClaimed         = errors.New("tokens already claimed")
	ErrInsufficientFunds      = errors.New("funding wallet has insufficient funds")
	ErrEnumerationUnsupported = errors.New("contract does not support user enumeration")
)
