package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware traces HTTP requests with OpenTelemetry.
// It wraps otelgin and adds feed specific span attributes.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	base := otelgin.Middleware(serviceName)

	return func(c *gin.Context) {
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := RequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request.id", requestID))
		}
		if id := c.Param("id"); id != "" {
			span.SetAttributes(attribute.String("feed.item_id", id))
		}
		if fileName := c.Param("fileName"); fileName != "" {
			span.SetAttributes(attribute.String("feed.file_name", fileName))
		}
		if claims, ok := ClaimsFromContext(c); ok {
			if email, ok := claims["email"].(string); ok {
				span.SetAttributes(attribute.String("user.email", email))
			}
		}

		for _, ginErr := range c.Errors {
			if ginErr.Err != nil {
				span.RecordError(ginErr.Err, trace.WithStackTrace(true))
				span.SetStatus(codes.Error, ginErr.Error())
			}
		}
	}
}
