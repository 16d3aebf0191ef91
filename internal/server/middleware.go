package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/internal/resource"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID propagates a client-supplied request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog logs every request at debug level, and at warn level for
// server errors.
func AccessLog(logger *neodb.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.DebugContext
		if status >= http.StatusInternalServerError {
			log = logger.WarnContext
		}
		log(c.Request.Context(), "http request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration", time.Since(start),
		)
	}
}

// QuerySlots rejects requests with 503 while all query slots are busy.
func QuerySlots(rc *resource.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rc.TryAcquireQuery() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "too many concurrent queries",
			})
			return
		}
		defer rc.ReleaseQuery()
		c.Next()
	}
}
