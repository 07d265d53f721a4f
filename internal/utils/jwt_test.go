package utils

import (
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tenantID := "6f1c1c36-0b8f-4d57-8d0e-5c7c1f3f0a11"
	token, err := GenerateToken("secret", &models.UserClaims{
		UserID:   "user-1",
		TenantID: tenantID,
		Role:     models.RoleAdmin,
	}, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.HasPermission(models.PermissionSettingsWrite))

	profile := claims.Profile()
	require.NotNil(t, profile.TenantID)
	assert.Equal(t, tenantID, profile.TenantID.String())
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := GenerateToken("secret", &models.UserClaims{UserID: "u"}, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", &models.UserClaims{UserID: "u"}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err)

	_, err = GenerateToken("", &models.UserClaims{}, time.Minute)
	assert.Error(t, err)
}
