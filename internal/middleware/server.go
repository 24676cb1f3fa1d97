package middleware

import (
	"time"

	"contacts_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every completed request with method, path, status,
// duration and response size.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.HTTPLog(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
