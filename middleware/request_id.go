package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id and logs slow requests with it.
func RequestID(slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		if elapsed := time.Since(start); slow > 0 && elapsed > slow {
			log.Printf("[%s] slow request %s %s took %v", id, c.Request.Method, c.Request.URL.Path, elapsed)
		}
	}
}
