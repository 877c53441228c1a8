package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
)

// TokenFooter marks tokens issued by this service.
const TokenFooter = "stitchlk-admin"

// RequireAuth validates the PASETO bearer token and stores the subject and
// role in the request context. Roles narrows access when non-empty.
func RequireAuth(secretKey []byte, roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		var token paseto.JSONToken
		var footer string
		if err := paseto.NewV2().Decrypt(strings.TrimPrefix(header, "Bearer "), secretKey, &token, &footer); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if footer != TokenFooter || token.Validate() != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		role := token.Get("role")
		if len(allowed) > 0 && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set("userID", token.Subject)
		c.Set("userRole", role)
		c.Next()
	}
}
