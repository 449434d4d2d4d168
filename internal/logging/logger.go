// Package logging is the structured logger shared by the store, its backing
// media and the CLI. SlogLogger is the only implementation; it renders with
// tint on a terminal and falls back to slog's text or JSON handlers.
package logging

import "context"

// Logger takes a message followed by alternating attribute keys and values:
//
//	log.Warn(ctx, "failed to read key, using default", "key", key, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With scopes a logger, typically by "component".
	With(args ...any) Logger
}
