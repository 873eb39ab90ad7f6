package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries "<scheme> <token>". Clients have always sent the token
// in this header rather than Authorization.
const TokenHeader = "x-access-token"

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireToken gates a route on a verifiable access token. A missing header
// and a missing token segment are 403s with distinct messages; a token that
// fails verification (signature, expiry, shape) is a 401.
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(TokenHeader)

		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "No Token provided or invalid format!",
			})
			return
		}

		parts := strings.Split(header, " ")

		if len(parts) < 2 || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "No Token provided!",
			})
			return
		}

		userID, err := m.jwt.Verify(parts[1])

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized!",
			})
			return
		}

		c.Set(KeyUserID, userID)

		c.Next()
	}
}

// UserIDFromContext reads back the subject id stashed by RequireToken.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
