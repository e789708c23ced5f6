package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceStorageCall creates a client span for object-storage calls
// Examples: presign_get, presign_put, head_bucket
func TraceStorageCall(ctx context.Context, operation, bucket, key string) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("s3").Start(ctx, "s3."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("s3.operation", operation),
			attribute.String("s3.bucket", bucket),
		),
	)
	if key != "" {
		span.SetAttributes(attribute.String("s3.key", key))
	}
	return ctx, span
}

// TraceCacheCall creates a client span for Redis cache calls
func TraceCacheCall(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return otel.Tracer("redis").Start(ctx, "redis."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("redis.operation", operation),
			attribute.String("redis.key", key),
		),
	)
}

// EndSpan records err (if any) on span and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
