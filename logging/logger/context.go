package logger

import (
	"context"

	"github.com/ncobase/pagelink/ctxutil"
)

const (
	traceKey = ctxutil.TraceIDKey
	pageKey  = "page_url"
)

// contextFields collects the request-scoped values carried by ctx.
func contextFields(ctx context.Context) map[string]any {
	fields := make(map[string]any, 2)
	if ctx == nil {
		return fields
	}
	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		fields[traceKey] = traceID
	}
	if page := ctxutil.GetPageURL(ctx); page != "" {
		fields[pageKey] = page
	}
	return fields
}

