package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/platform/logger"
)

// AuditHandler writes one structured log line per board event.
type AuditHandler struct {
	logger *slog.Logger
}

// NewAuditHandler creates an AuditHandler. If logger is nil, a default logger will be used.
func NewAuditHandler(log *slog.Logger) *AuditHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuditHandler{logger: log.With("component", "board_audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditHandler) HandleEvent(ctx context.Context, event *BoardEvent) error {
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Int64("column_id", event.ColumnID),
	}
	if event.TaskID != 0 {
		attrs = append(attrs, slog.Int64("task_id", event.TaskID))
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.String("payload", string(event.Payload)))
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("board changed", attrs...)
	return nil
}
