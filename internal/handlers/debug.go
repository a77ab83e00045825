package handlers

import (
	"net/http"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// Debug echoes request and auth state for troubleshooting cookie issues
// behind proxies. Unlike the rest of the site's debug history, this one
// requires a session; it reflects cookie values back to the caller.
type Debug struct {
	gate *session.Gate
	env  string
}

// NewDebug creates the debug handler.
func NewDebug(gate *session.Gate, env string) *Debug {
	return &Debug{gate: gate, env: env}
}

// Info reports the request as the server sees it.
func (d *Debug) Info(w http.ResponseWriter, r *http.Request) {
	sess := d.gate.FromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cookies := []map[string]string{}
	for _, c := range r.Cookies() {
		cookies = append(cookies, map[string]string{"name": c.Name, "value": c.Value})
	}

	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"environment":     d.env,
		"host":            r.Host,
		"protocol":        proto,
		"isAuthenticated": true,
		"user":            map[string]string{"email": sess.Email, "role": sess.Role},
		"cookies":         cookies,
		"headers": map[string]string{
			"userAgent": r.Header.Get("User-Agent"),
			"referer":   r.Header.Get("Referer"),
		},
	})
}
