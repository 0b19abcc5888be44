package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestAliasFromTokenPrefersAlias(t *testing.T) {
	token := signToken(t, Claims{
		Alias:            "chefpao",
		Username:         "pao.martinez",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	})

	alias, err := AliasFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "chefpao", alias)
}

func TestAliasFromTokenFallsBackToUsernameThenSubject(t *testing.T) {
	token := signToken(t, Claims{
		Username:         "pao.martinez",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	})
	alias, err := AliasFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "pao.martinez", alias)

	token = signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	})
	alias, err = AliasFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", alias)
}

func TestAliasFromTokenStripsBearerPrefix(t *testing.T) {
	token := signToken(t, Claims{Alias: "chefpao"})

	alias, err := AliasFromToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "chefpao", alias)
}

func TestAliasFromTokenEmpty(t *testing.T) {
	_, err := AliasFromToken("")
	require.Error(t, err)

	_, err = AliasFromToken("   ")
	require.Error(t, err)
}

func TestAliasFromTokenMalformed(t *testing.T) {
	_, err := AliasFromToken("not.a.jwt")
	require.Error(t, err)
}

func TestAliasFromTokenWithoutIdentity(t *testing.T) {
	token := signToken(t, Claims{Email: "pao@example.com"})

	_, err := AliasFromToken(token)
	require.Error(t, err)
}
