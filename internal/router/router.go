// Package router wires the HTTP surface: the JSON API under /api, the
// server-rendered admin pages under /admin, and the health check.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/handlers"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/middleware"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// Handlers collects the handler groups the router mounts.
type Handlers struct {
	Auth    *handlers.Auth
	Blogs   *handlers.Blogs
	Contact *handlers.Contact
	Debug   *handlers.Debug
	Pages   *handlers.Pages
}

// New creates the configured chi router with all middleware and route
// groups wired up. The returned rate limiters must be stopped on shutdown.
func New(gate *session.Gate, h Handlers) (chi.Router, []*middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(gate))

	r.Get("/health", healthHandler)

	// Brute-force and spam protection on the unauthenticated write
	// endpoints only; the blog API stays unthrottled.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/verify", h.Auth.Verify)
		})

		// Reads are public; the mutating handlers check the auth gate
		// themselves.
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blogs.List)
			r.Get("/{id}", h.Blogs.GetOne)
			r.Post("/", h.Blogs.Create)
			r.Put("/", h.Blogs.Update)
			r.Delete("/", h.Blogs.Delete)
		})

		r.With(contactLimiter.Middleware).Post("/contact", h.Contact.Submit)

		r.Get("/debug", h.Debug.Info)
	})

	// Admin pages. The login page is reachable anonymously; everything
	// else behind the navigation guard.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", h.Pages.LoginPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminPage)
			r.Get("/", h.Pages.Dashboard)
			r.Get("/dashboard", h.Pages.Dashboard)
		})
	})

	return r, []*middleware.RateLimiter{loginLimiter, contactLimiter}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
