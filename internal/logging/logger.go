// Package logging is the structured logger shared by the server and the CLI.
// Call sites depend on the Logger interface; SlogLogger backs it with
// log/slog.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	logger.Info(ctx, "grant issued", "key", key, "op", "put")
//
// Attributes attached to ctx with ContextWith are added to every line
// logged with that ctx.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every line.
	With(args ...any) Logger
}

type ctxAttrsKey struct{}

// ContextWith returns a ctx whose log lines carry args in addition to any
// attributes already attached by an outer caller.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(ctxAttrsKey{}).([]any)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxAttrsKey{}, merged)
}

func attrsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(ctxAttrsKey{}).([]any)
	return attrs
}
