package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aiqa-platform/user-service/internal/apperr"
)

// minKeyBytes is the smallest signing key accepted for HS512.
const minKeyBytes = 32

// tokenClaims is the payload minted into every access token. The
// username claim is the subject the rest of the system authenticates by.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenCodec mints and verifies compact HS512-signed bearer tokens.
// It is immutable after construction and safe for concurrent use; the
// signing key and TTL are process-wide and loaded once.
type TokenCodec struct {
	key []byte
	ttl time.Duration
}

// NewTokenCodec decodes the base64 signing secret and validates its length.
func NewTokenCodec(secretBase64 string, ttl time.Duration) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(secretBase64))
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("signing secret too short: %d bytes, need at least %d", len(key), minKeyBytes)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenCodec{key: key, ttl: ttl}, nil
}

// Mint issues a signed token for username with issued-at now and expiry
// now plus the configured TTL.
func (c *TokenCodec) Mint(username string, now time.Time) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("username must not be empty")
	}
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.key)
}

// VerifySubject validates the token's structure, signature, algorithm,
// and expiry against now, and returns the username claim. Every failure
// mode collapses to apperr.ErrInvalidToken: callers must not be able to
// tell a tampered token from an expired or malformed one.
func (c *TokenCodec) VerifySubject(token string, now time.Time) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperr.ErrInvalidToken
	}
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", apperr.ErrInvalidToken
	}
	if claims.Username == "" {
		return "", apperr.ErrInvalidToken
	}
	return claims.Username, nil
}

// RemainingTTL reports how long the token stays valid from now; negative
// for an already-expired token. The signature must still parse under the
// current key, but expiry itself is not an error here — callers that
// need trust call VerifySubject first.
func (c *TokenCodec) RemainingTTL(token string, now time.Time) (time.Duration, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return 0, apperr.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return 0, apperr.ErrInvalidToken
	}
	return claims.ExpiresAt.Sub(now), nil
}

func (c *TokenCodec) keyFunc(*jwt.Token) (any, error) {
	return c.key, nil
}
