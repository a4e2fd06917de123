package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitcoach/dietplan-backend/internal/types"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// Identity resolves the acting owner id for a request. A Bearer token
// from the auth collaborator wins; deployments that terminate auth at
// a gateway pass the already-verified id in X-User-ID instead. The
// resolved id lands in the context under "user_id".
func Identity(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
				c.Abort()
				return
			}
			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				c.Abort()
				return
			}
			c.Set("user_id", claims.UserID)
			c.Next()
			return
		}

		if header := c.GetHeader("X-User-ID"); header != "" {
			userID, err := uuid.Parse(header)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		c.Abort()
	}
}

// UserID pulls the resolved owner id from the gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
