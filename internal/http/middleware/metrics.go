package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tripmind/internal/observability"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveHTTP(routeOf(c), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
