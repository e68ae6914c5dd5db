package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// propagateID builds middleware that reads an identifier from the given
// header, minting a UUID when the caller sent none. The value is kept
// in the gin context under contextKey, echoed on the response header,
// and handed to enrich so the context logger carries it too.
func propagateID(header, contextKey string, enrich func(ctx context.Context, id string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(contextKey, id)
		c.Header(header, id)

		if enrich != nil {
			c.Request = c.Request.WithContext(enrich(c.Request.Context(), id))
		}

		c.Next()
	}
}

// contextString returns the string stored under key, or "".
func contextString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}
