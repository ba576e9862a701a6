package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// ciEnvVars maps CI environment variables to the attribute names added to log records.
var ciEnvVars = map[string]string{
	"GITHUB_RUN_ID":     "ci_run_id",
	"GITHUB_SHA":        "ci_commit",
	"GITHUB_REF_NAME":   "ci_ref",
	"GITHUB_WORKFLOW":   "ci_workflow",
	"GITHUB_REPOSITORY": "ci_repository",
}

// CIHandler is a custom slog.Handler that adds CI environment metadata
// to log records.
type CIHandler struct {
	handler  slog.Handler
	metadata map[string]string
}

// NewCIHandler creates a new CIHandler writing JSON to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	var handlerOpts slog.HandlerOptions
	if opts != nil {
		handlerOpts = *opts
	}

	return &CIHandler{
		handler:  slog.NewJSONHandler(out, &handlerOpts),
		metadata: getCIMetadata(),
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs), metadata: h.metadata}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name), metadata: h.metadata}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()

	for key, value := range h.metadata {
		enhanced.AddAttrs(slog.String(key, value))
	}

	// sub-second precision helps order records from parallel tests
	nanoseconds := enhanced.Time.UnixNano() % int64(time.Second)
	enhanced.AddAttrs(slog.Int64("timestamp_nano", nanoseconds))

	return h.handler.Handle(ctx, enhanced)
}

// getCIMetadata collects the CI variables that are set in the environment.
func getCIMetadata() map[string]string {
	metadata := make(map[string]string)
	for envVar, attr := range ciEnvVars {
		if value := os.Getenv(envVar); value != "" {
			metadata[attr] = value
		}
	}
	return metadata
}

// isInCIEnvironment returns true if running in a CI environment.
func isInCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}
