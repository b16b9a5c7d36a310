// Package api provides JSON handlers for reading and toggling the theme.
package api

import (
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/themer/app/server/internal"
)

// Handler handles API requests for /api/* endpoints.
type Handler struct {
	themer *internal.Themer
}

// New creates a new API handler.
func New(th *internal.Themer) *Handler {
	return &Handler{themer: th}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", h.handleGet)
	r.HandleFunc("POST /theme/toggle", h.handleToggle)
}

// themeResponse is the JSON body of both endpoints.
type themeResponse struct {
	Theme string `json:"theme"`
	Dark  bool   `json:"dark"`
}

// handleGet returns the visitor's current theme.
// GET /api/theme
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.themer.Open(w, r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to open page")
		return
	}
	th := p.Theme()
	rest.RenderJSON(w, themeResponse{Theme: th.String(), Dark: th.IsDark()})
}

// handleToggle flips the visitor's theme and returns the new one.
// POST /api/theme/toggle
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	p, err := h.themer.Open(w, r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to open page")
		return
	}
	if _, err := p.Toggle(r.Context()); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to toggle theme")
		return
	}
	th := p.Theme()
	log.Printf("[DEBUG] api toggled theme to %s", th)
	rest.RenderJSON(w, themeResponse{Theme: th.String(), Dark: th.IsDark()})
}
