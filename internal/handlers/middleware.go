package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogMiddleware records every API call with its outcome and latency.
func (h *Handler) requestLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
