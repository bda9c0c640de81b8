package models

import (
	"time"
)

// RefreshToken is the persisted rotation token. One live row per user:
// a later issuance overwrites the row keyed by UserID.
type RefreshToken struct {
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the row must be treated as absent.
// Strictly now > ExpiresAt: a row expiring exactly at now is still live.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenPair is what a successful authentication mints: a short-lived
// access token and a longer-lived refresh token.
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
