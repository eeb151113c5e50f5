package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency delays the request by base*scale before the handler runs, to
// mimic network latency. A non-positive product adds no delay. If the client
// goes away during the delay the request is aborted before any handler work.
func Latency(base time.Duration, scale float64) gin.HandlerFunc {
	d := time.Duration(float64(base) * scale)
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
