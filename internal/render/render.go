// Package render provides HTML rendering for the two admin pages: the
// login form and the dashboard. Templates are embedded at compile time.
// The marketing site itself is served elsewhere; these pages exist so the
// admin area has something behind the route guard.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds the data passed to admin templates.
type PageData struct {
	Title string
	Email string // logged-in admin, empty on the login page
	Data  map[string]any
}

// Renderer executes the embedded admin templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all embedded admin templates.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, name := range []string{"login", "dashboard"} {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Page renders the named template as a full HTML response.
func (r *Renderer) Page(w http.ResponseWriter, name string, data *PageData) {
	tmpl, ok := r.templates[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("template execution failed", "name", name, "error", err)
	}
}
