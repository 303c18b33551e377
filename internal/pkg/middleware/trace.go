package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxTraceID    = "traceID"
	traceIDHeader = "X-Trace-ID"
)

// TraceMiddleware 添加请求追踪ID，优先沿用上游传入的值
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(ctxTraceID, traceID)
		c.Header(traceIDHeader, traceID)

		c.Next()
	}
}
