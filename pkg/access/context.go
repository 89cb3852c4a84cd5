package access

import "context"

// ContextKey is the context key for the caller identity.
var ContextKey = &struct{ string }{"access"}

// FromContext returns the caller identity from the context. Missing
// identities are anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ContextKey).(Identity); ok {
		return id
	}

	return Identity{}
}

// WithContext returns a new context with the caller identity.
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ContextKey, id)
}
