package logger

import "context"

type ctxKey struct{}

// WithContext stores l in ctx. The HTTP middleware uses it to hand each
// request a logger tagged with its request id.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or fallback when there is
// none. A nil fallback yields a no-op logger.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	if fallback == nil {
		return NewNop()
	}
	return fallback
}
