// Package web provides HTTP handlers for the web UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/go-pkgz/routegroup"

	"github.com/umputun/themer/app/server/internal"
)

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// Config holds web handler configuration.
type Config struct {
	BaseURL string
	Title   string
	Version string
}

// Handler handles web UI requests.
type Handler struct {
	themer  *internal.Themer
	tmpl    *template.Template
	baseURL string
	title   string
	version string
}

// New creates a new web handler.
func New(th *internal.Themer, cfg Config) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	title := cfg.Title
	if title == "" {
		title = "Themer"
	}
	return &Handler{themer: th, tmpl: tmpl, baseURL: cfg.BaseURL, title: title, version: cfg.Version}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("POST /web/theme", h.handleThemeToggle)
}

// templateData holds data passed to templates.
type templateData struct {
	Title     string
	Theme     string
	Dark      bool
	BodyClass string
	Control   string
	BaseURL   string
	Version   string
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.baseURL + path
}
