package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// LogAuditEvent logs a structured audit event for a state-changing operation.
// result is AuditSuccess or AuditFailure; details may be nil.
func LogAuditEvent(
	ctx context.Context,
	action, resourceType, resourceID, result string,
	details map[string]any,
) {
	fields := []zap.Field{
		zap.String("audit.action", action),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
	}
	if len(details) > 0 {
		fields = append(fields, zap.Any("audit.details", details))
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		fields = append(fields, zap.String("audit.trace_id", traceID))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
