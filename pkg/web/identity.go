package web

import (
	"net/http"
	"strings"

	"github.com/grantflow/grantflow/pkg/access"
)

// Identity headers set by the trusted proxy in front of the API.
const (
	HeaderUserID   = "X-Grantflow-User-Id"
	HeaderUserName = "X-Grantflow-User-Name"
	HeaderRoles    = "X-Grantflow-Roles"
)

// IdentityFromRequest reads the caller identity from the request headers.
// Requests without a user id are anonymous.
func IdentityFromRequest(r *http.Request) access.Identity {
	id := access.Identity{
		UserID:   strings.TrimSpace(r.Header.Get(HeaderUserID)),
		UserName: strings.TrimSpace(r.Header.Get(HeaderUserName)),
		Roles:    access.ParseRoles(r.Header.Get(HeaderRoles)),
	}
	if id.UserID == "" {
		return access.Identity{}
	}
	return id
}

// NewIdentityHandler returns a middleware that adds the caller identity to
// the request context.
func NewIdentityHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := access.WithContext(r.Context(), IdentityFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects callers without the Admin role.
func requireAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !access.FromContext(r.Context()).IsAdmin() {
			renderForbidden(w, r)
			return
		}
		next(w, r)
	})
}
