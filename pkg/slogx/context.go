package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}
type reqIDKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// RequestID returns the id attached by HTTPMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}

// Detach returns a context carrying ctx's logger and request id but none of
// its cancellation, for work that outlives the request.
func Detach(ctx context.Context) context.Context {
	out := WithContext(context.Background(), FromContext(ctx))
	if id := RequestID(ctx); id != "" {
		out = context.WithValue(out, reqIDKey{}, id)
	}
	return out
}
