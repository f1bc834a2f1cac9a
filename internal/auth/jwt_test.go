package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyflow/propertyflow/internal/auth"
	"github.com/propertyflow/propertyflow/internal/domain"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func testUser() *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		TenantID:     "tenant-a",
		Email:        "manager@example.com",
		Name:         "Manager",
		IsAdmin:      false,
		UserMetadata: map[string]any{"tenant_id": "tenant-a", "locale": "en"},
		AppMetadata:  map[string]any{"plan": "pro"},
	}
}

func TestIssueAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	u := testUser()
	token, err := auth.IssueAccessToken(testSecret, u, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, "access", claims.TokenType)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "propertyflow", claims.Issuer)

	// Tenant metadata namespaces round-trip through the token so the
	// resolver's fast path works without a store lookup.
	assert.Equal(t, "tenant-a", claims.TenantID)
	assert.Equal(t, "tenant-a", claims.UserMetadata["tenant_id"])
	assert.Equal(t, "pro", claims.AppMetadata["plan"])
}

func TestIssueRefreshToken(t *testing.T) {
	t.Parallel()

	token, err := auth.IssueRefreshToken(testSecret, testUser(), time.Hour)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateToken_Rejections(t *testing.T) {
	t.Parallel()

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, testUser(), time.Hour)
		require.NoError(t, err)

		_, err = auth.ValidateToken("another-secret-that-is-also-32-chars", token)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, testUser(), -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateToken(testSecret, token)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := auth.ValidateToken(testSecret, "not.a.jwt")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
