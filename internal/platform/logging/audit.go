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

// LogAuditEvent records a state change on a stored resource, e.g. a draft save.
// details may be nil.
func LogAuditEvent(ctx context.Context, action, resourceType, resourceID, result string, details map[string]any) {
	fields := []zap.Field{
		zap.String("audit.action", action),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
	}
	if len(details) > 0 {
		fields = append(fields, zap.Any("audit.details", details))
	}
	LoggerFromContext(ctx).Info("audit event", fields...)
}
