package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIdentityToken(t *testing.T) {
	secret := "test-secret"

	tokenStr, err := CreateIdentityToken(&Identity{
		ID:       5,
		FullName: "Marc Leroy",
		Email:    "marc@example.com",
		UserType: "Chef d'équipe",
	}, secret, time.Hour)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(*IdentityClaims)
	assert.Equal(t, uint(5), claims.Identity.ID)
	assert.Equal(t, "marc@example.com", claims.Email)
	assert.Equal(t, "mybtp", claims.Issuer)
	assert.NotEmpty(t, claims.SID)
}
