package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqa-platform/user-service/internal/apperr"
)

func testSecret() string {
	key := make([]byte, 64)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func newTestCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret(), ttl)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := NewTokenCodec("not-base64!!!", time.Hour)
		require.Error(t, err)
	})

	t.Run("rejects short key", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("tooshort"))
		_, err := NewTokenCodec(short, time.Hour)
		require.Error(t, err)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := NewTokenCodec(testSecret(), 0)
		require.Error(t, err)
	})
}

func TestMintVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Now()

	token, err := codec.Mint("alice", now)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	subject, err := codec.VerifySubject(token, now)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestMintEmptyUsername(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	_, err := codec.Mint("  ", time.Now())
	require.Error(t, err)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	ttl := 30 * time.Minute
	codec := newTestCodec(t, ttl)
	t0 := time.Now()

	token, err := codec.Mint("alice", t0)
	require.NoError(t, err)

	_, err = codec.VerifySubject(token, t0.Add(ttl-time.Second))
	assert.NoError(t, err)

	_, err = codec.VerifySubject(token, t0.Add(ttl+time.Second))
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	token, err := codec.Mint("alice", time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	for bit := 0; bit < 8; bit++ {
		tampered := make([]byte, len(sig))
		copy(tampered, sig)
		tampered[0] ^= 1 << bit
		forged := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(tampered)

		_, err := codec.VerifySubject(forged, time.Now())
		assert.ErrorIs(t, err, apperr.ErrInvalidToken, "bit %d", bit)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Now()
	token, err := codec.Mint("alice", now)
	require.NoError(t, err)

	parts := strings.Split(token, ".")

	// Swap in a payload minted for someone else under a different key.
	other, err := NewTokenCodec(base64.StdEncoding.EncodeToString(make([]byte, 64)), time.Hour)
	require.NoError(t, err)
	otherToken, err := other.Mint("mallory", now)
	require.NoError(t, err)
	otherParts := strings.Split(otherToken, ".")

	forged := parts[0] + "." + otherParts[1] + "." + parts[2]
	_, err = codec.VerifySubject(forged, now)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	otherKey := make([]byte, 64)
	for i := range otherKey {
		otherKey[i] = byte(255 - i)
	}
	other, err := NewTokenCodec(base64.StdEncoding.EncodeToString(otherKey), time.Hour)
	require.NoError(t, err)

	token, err := codec.Mint("alice", time.Now())
	require.NoError(t, err)

	_, err = other.VerifySubject(token, time.Now())
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	for _, token := range []string{
		"",
		"   ",
		"not-a-jwt",
		"a.b",
		"a.b.c.d",
		"%%%.%%%.%%%",
	} {
		_, err := codec.VerifySubject(token, time.Now())
		assert.ErrorIs(t, err, apperr.ErrInvalidToken, "token %q", token)
	}
}

func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Now()

	// Same key, but signed with HS256: the allow-list must reject it.
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Username: "alice",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.key)
	require.NoError(t, err)

	_, err = codec.VerifySubject(token, now)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerifyMissingSubjectClaim(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Now()

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(codec.key)
	require.NoError(t, err)

	_, err = codec.VerifySubject(token, now)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestRemainingTTL(t *testing.T) {
	ttl := time.Hour
	codec := newTestCodec(t, ttl)
	t0 := time.Now()

	token, err := codec.Mint("alice", t0)
	require.NoError(t, err)

	remaining, err := codec.RemainingTTL(token, t0.Add(10*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, (50 * time.Minute).Seconds(), remaining.Seconds(), 1)

	// Negative once expired, without an error.
	remaining, err = codec.RemainingTTL(token, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Negative(t, remaining)

	// Still refuses tokens that do not parse under the key.
	_, err = codec.RemainingTTL("garbage", t0)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}
