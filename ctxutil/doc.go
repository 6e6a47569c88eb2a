// Package ctxutil carries request-scoped values used for logging.
//
// Every page fetch runs under a trace id:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//
// The logger adds the id to each entry and the HTTP client forwards it
// as the X-Request-Id header.
package ctxutil
