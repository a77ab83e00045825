package handlers

import (
	"log/slog"
	"net/http"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/blogstore"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/middleware"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/render"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// Pages serves the server-rendered admin pages. The JSON API under /api
// is the real surface; these pages are the thin UI over it.
type Pages struct {
	renderer *render.Renderer
	store    blogstore.Store
	gate     *session.Gate
}

// NewPages creates the admin page handler group.
func NewPages(renderer *render.Renderer, store blogstore.Store, gate *session.Gate) *Pages {
	return &Pages{renderer: renderer, store: store, gate: gate}
}

// LoginPage renders the login form. A client that already holds a valid
// session is sent straight to the dashboard.
func (p *Pages) LoginPage(w http.ResponseWriter, r *http.Request) {
	if p.gate.FromRequest(r) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	p.renderer.Page(w, "login", &render.PageData{Title: "Admin Login"})
}

// Dashboard renders the post list for the logged-in admin. The route
// guard has already redirected anonymous requests to the login page.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	posts, err := p.store.List(r.Context())
	if err != nil {
		slog.Error("dashboard list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, "dashboard", &render.PageData{
		Title: "Dashboard",
		Email: sess.Email,
		Data:  map[string]any{"Posts": posts},
	})
}
