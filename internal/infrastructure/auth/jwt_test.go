package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestJWTService(at time.Time) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Issuer:     "paperfi-test",
		Expiration: time.Hour,
	}, shared.FixedClock{At: at})
}

func TestNewJWTService_DefaultExpiration(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s"}, shared.SystemClock{})
	assert.Equal(t, 24*time.Hour, svc.Expiration())
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestJWTService(testNow)

	token, err := svc.Issue("alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, testNow.Add(time.Hour), token.ExpiresAt)

	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, shared.Identity("alice"), claims.Identity())
	assert.Equal(t, "Alice", claims.Name)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.RemainingTTL(testNow))
}

func TestIssue_RequiresIdentity(t *testing.T) {
	_, err := newTestJWTService(testNow).Issue(" ", "")
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerify_Rejections(t *testing.T) {
	issuer := newTestJWTService(testNow)
	token, err := issuer.Issue("alice", "")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		_, err := newTestJWTService(testNow.Add(2 * time.Hour)).Verify(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		_, err := newTestJWTService(testNow.Add(-time.Hour)).Verify(token.AccessToken)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "another-secret-key-of-32-characters",
			Issuer:     "paperfi-test",
			Expiration: time.Hour,
		}, shared.FixedClock{At: testNow})
		_, err := other.Verify(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-at-least-32-chars",
			Issuer:     "someone-else",
			Expiration: time.Hour,
		}, shared.FixedClock{At: testNow})
		_, err := other.Verify(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", Issuer: "paperfi-test"},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryTokenBlacklist()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-2", 0))
	revoked, err = b.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-3", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	revoked, err = b.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)
}
