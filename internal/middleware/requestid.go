package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // UUID generation
)

const (
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-ID"
	// CtxRequestID is the gin context key holding the request id
	CtxRequestID = "request_id"
)

// RequestIDMiddleware tags each request with an id, reusing a well-formed incoming one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Id supplied by a proxy or client
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString() // Replace missing or malformed ids
		}
		c.Set(CtxRequestID, id)       // Store id in context
		c.Header(RequestIDHeader, id) // Echo id to the client
		c.Next()                      // Proceed to the next handler
	}
}
