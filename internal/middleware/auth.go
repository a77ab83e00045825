// Package middleware provides the HTTP middleware chain: session loading,
// the admin route guard, request logging, panic recovery, rate limiting
// and security headers.
package middleware

import (
	"context"
	"net/http"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// SessionKey is the context key for the admin session data.
const SessionKey contextKey = "session"

// LoadSession reads the admin cookie pair and, when valid, stores the
// session in the request context. It never blocks a request; enforcement
// happens in RequireAdminPage and in the handlers themselves.
func LoadSession(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if data := gate.FromRequest(r); data != nil {
				r = r.WithContext(context.WithValue(r.Context(), SessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminPage is the route guard for admin pages: unauthenticated
// requests are redirected to the login page before any page logic runs.
// It guards navigation only; the API handlers re-check the gate on every
// mutating call regardless.
func RequireAdminPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded (user is not authenticated).
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
