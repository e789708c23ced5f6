package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MockVerifier is a TokenVerifier for tests.
// By default it accepts every token except "invalid".
type MockVerifier struct {
	VerifyFunc func(tokenString string) (jwt.MapClaims, error)
	Calls      []string
}

// NewMockVerifier creates a mock verifier with default behavior
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

func (m *MockVerifier) Verify(tokenString string) (jwt.MapClaims, error) {
	m.Calls = append(m.Calls, tokenString)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(tokenString)
	}
	if tokenString == "invalid" {
		return nil, errors.New("invalid token")
	}
	return jwt.MapClaims{"email": "mock@udagram.dev"}, nil
}
