package backend

import "context"

type contextKey struct{ string }

var backendKey = &contextKey{"backend"}

// FromContext returns the backend from a context, or nil.
func FromContext(ctx context.Context) *Backend {
	if b, ok := ctx.Value(backendKey).(*Backend); ok {
		return b
	}

	return nil
}

// WithContext returns a new context with the backend attached.
func WithContext(ctx context.Context, b *Backend) context.Context {
	return context.WithValue(ctx, backendKey, b)
}
