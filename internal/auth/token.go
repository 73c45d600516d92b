package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims represents the claims carried by issued tokens.
type TokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies the access/refresh token pair. Access
// and refresh tokens are signed with distinct secrets so one can never be
// presented in place of the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager creates a TokenManager with the given secrets and
// lifetimes.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// SetClock overrides the clock used for issuing and verifying tokens.
// Tests use this to cross expiry boundaries without sleeping.
func (tm *TokenManager) SetClock(now func() time.Time) {
	tm.now = now
}

// GenerateAccessToken creates a short-lived access token for a user.
func (tm *TokenManager) GenerateAccessToken(userID int64) (string, error) {
	return tm.generate(userID, tm.accessSecret, tm.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for a user.
func (tm *TokenManager) GenerateRefreshToken(userID int64) (string, error) {
	return tm.generate(userID, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := tm.now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken verifies an access token and returns its claims.
func (tm *TokenManager) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return tm.validate(tokenString, tm.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (tm *TokenManager) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return tm.validate(tokenString, tm.refreshSecret)
}

func (tm *TokenManager) validate(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithTimeFunc(tm.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
