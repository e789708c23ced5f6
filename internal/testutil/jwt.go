package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJWTSecret is the shared secret used by handler and server tests
const TestJWTSecret = "udagram-test-secret"

// MintToken signs an HS256 token for email with TestJWTSecret
func MintToken(t *testing.T, email string) string {
	t.Helper()
	return MintTokenWithSecret(t, TestJWTSecret, email)
}

// MintTokenWithSecret signs an HS256 token for email with secret
func MintTokenWithSecret(t *testing.T, secret, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}
