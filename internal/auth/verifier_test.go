package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/user-management-api/internal/domain"
)

const testKeyID = "test-key"

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func publicKeyPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func ownerClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":                "user-1",
		"iss":                "https://keycloak.test/realms/emi",
		"preferred_username": "ana.lopez",
		"businessId":         "biz-1",
		"realm_access":       map[string]any{"roles": []string{"BUSINESS-OWNER"}},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
}

func TestPEMVerifier(t *testing.T) {
	key := generateKey(t)
	verifier, err := NewPEMVerifier(publicKeyPEM(t, key), "https://keycloak.test/realms/emi")
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := verifier.Verify("Bearer " + signToken(t, key, ownerClaims()))

		require.NoError(t, err)
		assert.Equal(t, "user-1", token.UserID())
		assert.Equal(t, "biz-1", token.BusinessID)
		assert.Equal(t, "ana.lopez", token.PreferredUsername)
		assert.True(t, domain.HasRole(token.Roles(), domain.RoleBusinessOwner))
	})

	t.Run("expired", func(t *testing.T) {
		claims := ownerClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()

		_, err := verifier.Verify(signToken(t, key, claims))

		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("other issuer", func(t *testing.T) {
		claims := ownerClaims()
		claims["iss"] = "https://evil.test"

		_, err := verifier.Verify(signToken(t, key, claims))

		assert.Error(t, err)
	})

	t.Run("signed with another key", func(t *testing.T) {
		_, err := verifier.Verify(signToken(t, generateKey(t), ownerClaims()))

		assert.Error(t, err)
	})

	t.Run("hmac token", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ownerClaims()).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(signed)

		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		for _, raw := range []string{"", "Bearer ", "Bearer", "  bearer \t "} {
			_, err := verifier.Verify(raw)

			assert.ErrorIs(t, err, ErrMissingToken, "%q", raw)
		}
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		token, err := verifier.Verify("bearer  " + signToken(t, key, ownerClaims()))

		require.NoError(t, err)
		assert.Equal(t, "biz-1", token.BusinessID)
	})
}

func TestNewPEMVerifier_InvalidKey(t *testing.T) {
	_, err := NewPEMVerifier("not a key", "")
	assert.Error(t, err)

	_, err = NewPEMVerifier("", "")
	assert.Error(t, err)
}

func TestJWKSVerifier(t *testing.T) {
	key := generateKey(t)
	jwks, err := json.Marshal(map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"kid": testKeyID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	})
	require.NoError(t, err)
	kf, err := keyfunc.NewJWKSetJSON(jwks)
	require.NoError(t, err)

	token, err := NewVerifierWithKeyfunc(kf.Keyfunc, "").Verify(signToken(t, key, ownerClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-1", token.UserID())
}
