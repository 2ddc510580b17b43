package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/linkvault/internal/server/auth"
)

// contextUserIDKey is the gin context key carrying the authenticated user id.
const contextUserIDKey = "auth.user_id"

// requireAuth validates the Authorization bearer token and injects the user
// id into the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "token validation failed", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		c.Set(contextUserIDKey, claims.Subject)
		c.Next()
	}
}
