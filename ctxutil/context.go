package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDKey is the log field and context key of the trace id
	TraceIDKey = "trace_id"

	traceIDKey contextKey = TraceIDKey
	pageKey    contextKey = "page_url"
)

// GetTraceID gets trace id from context.Context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetPageURL records the page URL being fetched.
func SetPageURL(ctx context.Context, u string) context.Context {
	return context.WithValue(ctx, pageKey, u)
}

// GetPageURL returns the page URL being fetched, if any.
func GetPageURL(ctx context.Context) string {
	if u, ok := ctx.Value(pageKey).(string); ok {
		return u
	}
	return ""
}
