// Package session implements the admin auth gate as a pair of plain
// cookies: an authenticated flag and the admin's email. The pair carries
// no signature and is backed by no server-side state, so any client able
// to set cookies can forge a session and a copied, unexpired cookie works
// from any machine. This reproduces the behavior of the site it replaces
// and is an explicitly documented weakness, not an oversight. Deployments
// that want a real credential check can set ADMIN_PASSWORD_HASH (see the
// config package); the cookies themselves remain unsigned either way.
package session

import (
	"net/http"
	"time"
)

const (
	// AuthCookieName holds the literal flag value "true" when a session
	// is active.
	AuthCookieName = "admin-authenticated"

	// EmailCookieName holds the admin identity established at login.
	EmailCookieName = "admin-email"

	// authenticatedValue is the only flag value the gate accepts.
	authenticatedValue = "true"

	// TTL is the cookie lifetime. Expiry is enforced only by the cookie
	// itself; there is no server-side revocation.
	TTL = 24 * time.Hour
)

// Data identifies the logged-in admin. Role is always "admin"; the site
// has a single administrative role.
type Data struct {
	Email string
	Role  string
}

// Gate issues and verifies the cookie pair.
type Gate struct {
	secure bool
}

// NewGate returns a gate. With secure set, issued cookies are marked
// Secure (HTTPS only); development runs without it.
func NewGate(secure bool) *Gate {
	return &Gate{secure: secure}
}

// Issue establishes a session by setting both cookies on the response.
func (g *Gate) Issue(w http.ResponseWriter, email string) {
	g.setCookie(w, AuthCookieName, authenticatedValue, int(TTL.Seconds()))
	g.setCookie(w, EmailCookieName, email, int(TTL.Seconds()))
}

// FromRequest reads the cookie pair. It returns nil unless both cookies
// are present and the flag equals the literal marker. The email is
// trusted as-is from the cookie value.
func (g *Gate) FromRequest(r *http.Request) *Data {
	flag, err := r.Cookie(AuthCookieName)
	if err != nil || flag.Value != authenticatedValue {
		return nil
	}
	email, err := r.Cookie(EmailCookieName)
	if err != nil || email.Value == "" {
		return nil
	}
	return &Data{Email: email.Value, Role: "admin"}
}

// Clear expires both cookies immediately.
func (g *Gate) Clear(w http.ResponseWriter) {
	g.setCookie(w, AuthCookieName, "", -1)
	g.setCookie(w, EmailCookieName, "", -1)
}

func (g *Gate) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
