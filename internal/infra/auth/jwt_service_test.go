package auth

import (
	"testing"

	"clearpass/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret"
	cfg.SecretKey.Refresh = "test_refresh_secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t)

	access, refresh, err := svc.GenerateTokens("user-123", false)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.False(t, claims.IsPremium)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTService_PremiumClaim(t *testing.T) {
	svc := newTestJWTService(t)

	access, _, err := svc.GenerateTokens("user-456", true)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.True(t, claims.IsPremium)
}

func TestJWTService_RejectsRefreshTokenAsAccess(t *testing.T) {
	svc := newTestJWTService(t)

	_, refresh, err := svc.GenerateTokens("user-123", false)
	require.NoError(t, err)

	// A refresh token must not pass access-token validation
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken("")
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	svc := newTestJWTService(t)
	assert.Positive(t, svc.GetRefreshTokenDuration())
}
