package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/logger"
)

// AdminSecretHeader carries the pre-shared secret for privileged routes
const AdminSecretHeader = "X-Warps-Admin-Secret"

// SecretAuth returns a gin middleware that gates a route behind a pre-shared
// secret header. An empty configured secret closes the route entirely.
func SecretAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminSecretHeader)

		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			logger.Warn("Rejected privileged request",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
