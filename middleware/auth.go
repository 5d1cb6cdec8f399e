package middleware

import (
	"net/http"
	"strings"

	"github.com/CUknot/meetroom/utils"
	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

type TokenParser interface {
	ParseToken(token string) (*utils.Claims, error)
}

// JWTAuth requires a valid "Bearer <token>" Authorization header and stores
// the caller's id and username on the context.
func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
