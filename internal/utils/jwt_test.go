package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("secret", "a@b.com", "edit", 2*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(2*time.Hour), tok.Exp, time.Minute)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, tk.Method)
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "a@b.com", claims["email"])
	assert.Equal(t, "edit", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, tok.Exp.Unix(), exp.Unix())
}

func TestNewAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("secret", "a@b.com", "view", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
