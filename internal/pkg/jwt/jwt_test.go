package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTripsThroughVerifier(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("e1", "c1", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "e1", claims["employee_id"])
	assert.Equal(t, "c1", claims["company_id"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_BadExpirationConfigRejected(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("e1", "c1", false)
	assert.Error(t, err)
}

func TestGenerateAccessToken_WrongSecretFailsVerification(t *testing.T) {
	issuer := NewJWTService("issuer-secret", "1h")
	verifier := NewJWTService("other-secret", "1h")

	token, _, err := issuer.GenerateAccessToken("e1", "c1", false)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}
