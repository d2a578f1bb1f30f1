package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeout puts a deadline on every request's context. Handlers are not
// killed; they are expected to watch ctx.Done() on anything slow. When the
// deadline passes and no response has been written yet, the request ends as a
// 504. A non-positive duration disables the deadline entirely.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		timedOut := ctx.Err() == context.DeadlineExceeded
		cancel()

		// A response that is already on the wire cannot be replaced.
		if timedOut && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "request timed out",
			})
		}
	}
}
