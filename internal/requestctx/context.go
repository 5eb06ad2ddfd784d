// Package requestctx carries per-request state through context.Context.
// Correlation IDs and principals are threaded explicitly through the call
// chain; there is no ambient global request state.
package requestctx

import (
	"context"

	"github.com/upb/retrieval-gateway/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	principalKey contextKey = "principal"
)

// WithRequestID returns a context carrying the request correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the correlation ID from the context, or "" when unset.
func RequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithPrincipal returns a context carrying the resolved principal.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Principal returns the resolved principal from the context. The boolean is
// false when no principal has been resolved for this request.
func Principal(ctx context.Context) (models.Principal, bool) {
	if v := ctx.Value(principalKey); v != nil {
		if p, ok := v.(models.Principal); ok {
			return p, true
		}
	}
	return models.Principal{}, false
}
