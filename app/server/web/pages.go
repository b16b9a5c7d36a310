package web

import (
	"net/http"

	log "github.com/go-pkgz/lgr"
)

// handleIndex renders the page with the stored theme applied to the body.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	p, err := h.themer.Open(w, r)
	if err != nil {
		log.Printf("[ERROR] failed to open page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := templateData{
		Title:     h.title,
		Theme:     p.Theme().String(),
		Dark:      p.Theme().IsDark(),
		BodyClass: p.BodyClass(),
		Control:   p.Control(),
		BaseURL:   h.baseURL,
		Version:   h.version,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// handleThemeToggle toggles the theme between light and dark and redirects back to the page.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	p, err := h.themer.Open(w, r)
	if err != nil {
		log.Printf("[ERROR] failed to open page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if _, err := p.Toggle(r.Context()); err != nil {
		log.Printf("[WARN] theme toggle failed: %v", err)
		http.Error(w, "can't save theme", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.url("/"), http.StatusSeeOther)
}
