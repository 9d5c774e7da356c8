// Package observability provides audit logging helpers for the correlative module.
package observability

import (
	"context"
	"log/slog"

	"correlativos/pkg/attrs"
	"correlativos/pkg/requestcontext"
)

// LogAudit logs audit events to the structured logger. Issuance already has a
// durable trail in the issuance_records table; these entries exist so the
// operational log can be correlated with it by request id.
func LogAudit(ctx context.Context, logger *slog.Logger, event string, attrList ...any) {
	if logger == nil {
		return
	}

	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}
	if subject := attrs.ExtractInt64(attrList, "usuario_id"); subject != 0 {
		attrList = append(attrList, "subject", subject)
	}

	args := append(attrList, "event", event, "log_type", "audit")
	logger.InfoContext(ctx, event, args...)
}
