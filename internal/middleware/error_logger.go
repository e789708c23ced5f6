package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/metrics"
	"go.uber.org/zap"
)

// ErrorLogger logs errors attached with c.Error and makes sure the client
// gets a bare 500 when a handler gave up without writing a response.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		route := c.FullPath()
		for _, ginErr := range c.Errors {
			logger.Log.Error("Unhandled request error",
				zap.Error(ginErr.Err),
				zap.String("method", c.Request.Method),
				zap.String("route", route),
				logger.WithRequestID(RequestID(c)),
			)
			metrics.RecordError("unhandled", route)
		}

		if !c.Writer.Written() {
			c.Status(http.StatusInternalServerError)
			c.Writer.WriteHeaderNow()
		}
	}
}
