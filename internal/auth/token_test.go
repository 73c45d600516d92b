package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	tm := newTestTokenManager()

	tok, err := tm.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := tm.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID, "tokens should carry a jti")
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	tm := newTestTokenManager()

	tok, err := tm.GenerateRefreshToken(7)
	require.NoError(t, err)

	claims, err := tm.ValidateRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	tm := newTestTokenManager()

	access, err := tm.GenerateAccessToken(1)
	require.NoError(t, err)
	refresh, err := tm.GenerateRefreshToken(1)
	require.NoError(t, err)

	_, err = tm.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not verify as a refresh token")

	_, err = tm.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token must not verify as an access token")
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := newTestTokenManager()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"wrong secret", func() string {
			other := NewTokenManager("other-secret", "other-refresh", time.Minute, time.Minute)
			tok, _ := other.GenerateAccessToken(1)
			return tok
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAccessTokenExpires(t *testing.T) {
	tm := newTestTokenManager()

	issued := time.Now()
	tm.SetClock(func() time.Time { return issued })

	tok, err := tm.GenerateAccessToken(42)
	require.NoError(t, err)

	// Still valid one minute before the 15 minute deadline.
	tm.SetClock(func() time.Time { return issued.Add(14 * time.Minute) })
	_, err = tm.ValidateAccessToken(tok)
	assert.NoError(t, err)

	// Expired once the window has elapsed.
	tm.SetClock(func() time.Time { return issued.Add(16 * time.Minute) })
	_, err = tm.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	tm := newTestTokenManager()

	issued := time.Now()
	tm.SetClock(func() time.Time { return issued })

	refresh, err := tm.GenerateRefreshToken(42)
	require.NoError(t, err)

	// Well past the access window, the refresh token still verifies.
	tm.SetClock(func() time.Time { return issued.Add(24 * time.Hour) })
	_, err = tm.ValidateRefreshToken(refresh)
	assert.NoError(t, err)

	// After seven days it is gone too.
	tm.SetClock(func() time.Time { return issued.Add(8 * 24 * time.Hour) })
	_, err = tm.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
