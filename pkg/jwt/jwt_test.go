package jwt

import (
	"testing"
	"time"

	"hospital-admin/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceSessionToken(t *testing.T) {
	s := NewJWTService(config.SessionConfig{Secret: "secret", TTL: time.Hour})

	id, token, err := s.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.Equal(t, SessionTokenType, claims.TokenType)
	assert.Equal(t, time.Hour, s.GetSessionTTL())
}

func TestJWTServiceRejects(t *testing.T) {
	s := NewJWTService(config.SessionConfig{Secret: "secret", TTL: time.Hour})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService(config.SessionConfig{Secret: "secret", TTL: -time.Minute})
		_, token, err := expired.GenerateSessionToken()
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong token type", func(t *testing.T) {
		token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
			SessionID: "sid",
			TokenType: "access",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = s.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("missing session id", func(t *testing.T) {
		token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
			TokenType: SessionTokenType,
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = s.ValidateToken(signed)
		assert.Error(t, err)
	})
}
