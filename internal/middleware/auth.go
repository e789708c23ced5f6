package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/errors"
	"github.com/udagram/feed-api/internal/util"
)

// ClaimsKey is the gin context key holding the verified jwt.MapClaims
const ClaimsKey = "claims"

// RequireAuth rejects requests that do not carry a verifiable
// "Authorization: <scheme> <token>" header. The scheme is not checked.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.RespondWithAPIError(c, errors.NoAuthHeader())
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			util.RespondWithAPIError(c, errors.MalformedToken())
			c.Abort()
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			util.RespondWithAPIError(c, errors.AuthVerificationFailed(err))
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth
func ClaimsFromContext(c *gin.Context) (jwt.MapClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}
