package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"webshop/config"
	"webshop/utils"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	ok, err := utils.VerifyPassword(hash, "s3cret-pass")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = utils.VerifyPassword(hash, "wrong-pass")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	config.LoadConfig()

	token, err := utils.GenerateToken(7, "ada@example.com", "admin")
	require.NoError(t, err)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.LoadConfig()

	_, err := utils.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "green-tea", utils.Slugify("Green Tea"))
	require.Equal(t, "earl-grey-50g", utils.Slugify("Earl Grey (50g)"))
}
