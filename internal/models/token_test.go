package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{"expiry in future", now.Add(time.Hour), false},
		{"expiry one second in past", now.Add(-time.Second), true},
		{"expiry exactly now is still live", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := RefreshToken{UserID: 1, Token: "Bearer t", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expired, token.IsExpired(now))
		})
	}
}
