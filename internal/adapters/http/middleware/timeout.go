package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout returns middleware that bounds each request with a context
// deadline. Handlers pass the request context to every store call, so
// a store that never resolves fails the call once the deadline passes;
// the repository reports that as a store failure and the mapper turns
// it into the generic internal-error outcome.
//
// The deadline cannot forcibly stop handlers that ignore context
// cancellation.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
