package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udagram/feed-api/internal/errors"
	"github.com/udagram/feed-api/internal/logger"
	"go.uber.org/zap"
)

// RespondWithAPIError sends the JSON body of apiErr with its status
func RespondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	fields := []zap.Field{
		zap.String("code", string(apiErr.Code)),
		zap.String("reason", string(apiErr.Reason)),
		zap.String("message", apiErr.Message),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", apiErr.Status),
	}
	if apiErr.Err != nil {
		fields = append(fields, zap.Error(apiErr.Err))
	}

	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error", fields...)
	} else if apiErr.Status >= http.StatusBadRequest {
		logger.Log.Warn("API error", fields...)
	}

	c.JSON(apiErr.Status, apiErr.Body())
}

// RespondEmpty sends a status with no body
func RespondEmpty(c *gin.Context, status int) {
	c.Status(status)
	c.Writer.WriteHeaderNow()
}
