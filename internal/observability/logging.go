// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// Context keys picked up by the context-aware handler.
const (
	RunIDKey LogContextKey = "run_id"
	StageKey LogContextKey = "stage"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds the run, stage and active trace ids to the record before passing it on.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RunIDKey).(string); ok {
		r.AddAttrs(slog.String("run_id", rid))
	}
	if stage, ok := ctx.Value(StageKey).(string); ok {
		r.AddAttrs(slog.String("stage", stage))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

func init() {
	format := "text"
	if os.Getenv("APP_ENV") == "production" {
		format = "json"
	}
	Logger = NewLogger(os.Stdout, "info", format)
}

// NewLogger builds a context-aware slog logger writing to w.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{handler})
}

// ConfigureLogging replaces the global logger. An empty format picks JSON in production.
func ConfigureLogging(env, level, format string) {
	if format == "" {
		format = "text"
		if env == "production" || env == "prod" {
			format = "json"
		}
	}
	Logger = NewLogger(os.Stdout, level, format)
	slog.SetDefault(Logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewRunID returns a new unique identifier for a seed run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a new context carrying the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// WithStage returns a new context carrying the current seed stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// ExtractRunID retrieves the run identifier from the context.
func ExtractRunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, fields map[string]any) {
	Logger.DebugContext(ctx, "repository create", l.attrs("create", fields)...)
}

// LogSkip logs an insert that was skipped because the row already exists.
func (l *RepoLogger) LogSkip(ctx context.Context, reason string, fields map[string]any) {
	attrs := append(l.attrs("insert", fields), slog.String("reason", reason))
	Logger.DebugContext(ctx, "repository insert skipped", attrs...)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, fields map[string]any) {
	Logger.DebugContext(ctx, "repository update", l.attrs("update", fields)...)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	Logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

func (l *RepoLogger) attrs(operation string, fields map[string]any) []any {
	attrs := []any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
