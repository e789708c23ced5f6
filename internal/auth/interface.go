package auth

import "github.com/golang-jwt/jwt/v5"

// TokenVerifier checks bearer tokens issued by the udagram user service.
// This enables mocking for unit tests without a shared secret.
type TokenVerifier interface {
	Verify(tokenString string) (jwt.MapClaims, error)
}

// Ensure Verifier implements TokenVerifier
var _ TokenVerifier = (*Verifier)(nil)
