package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/utils"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware tags each request with an id, reusing the caller's
// X-Request-ID when present
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = utils.NewRequestID()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		// logger.WithContext reads the id from the request context
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
