package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// identityHeader carries the caller's user ID, stamped by the API gateway
// after it has authenticated the request. This service trusts the header
// and performs no authentication of its own.
const identityHeader = "X-User-ID"

// IdentityMiddleware extracts the gateway-provided user ID and stores it
// in the context. Requests without the header are rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(identityHeader)
		if userID == "" {
			logger := GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Request missing identity header", slog.String("header", identityHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + identityHeader + " header"})
			return
		}

		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))

		c.Next()
	}
}
