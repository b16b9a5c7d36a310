// Package theme implements the dark mode toggler. It keeps the dark-mode marker on the page's
// root container in sync with the persisted theme preference.
package theme

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/themer/app/enum"
	"github.com/umputun/themer/app/page"
)

//go:generate moq -out mocks/storage.go -pkg mocks -skip-ensure -fmt goimports . Storage

// defaults match the markup served by the web handler.
const (
	DefaultKey     = "theme"
	DefaultMarker  = "dark-mode"
	DefaultControl = "theme-toggle"
)

var (
	// ErrNotFound is returned by Storage when no preference is stored.
	ErrNotFound = errors.New("preference not found")
	// ErrNoControl is returned by Bind when the document has no toggle control.
	ErrNoControl = errors.New("toggle control not found")
)

// Storage is a persistent string key-value store scoped to one origin.
type Storage interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// Container holds the visual marker classes of the root presentation element.
type Container interface {
	Add(class string)
	Remove(class string)
	Toggle(class string) bool
	Contains(class string) bool
}

// Options customizes the storage key and marker class.
type Options struct {
	Key    string
	Marker string
}

// Toggler flips the dark-mode marker and persists the resulting preference.
// It is meant for a single page instance and is not safe for concurrent use.
type Toggler struct {
	store  Storage
	body   Container
	key    string
	marker string
}

// New makes a Toggler for the given storage and container. Empty options fall back to defaults.
func New(st Storage, body Container, opts Options) *Toggler {
	res := &Toggler{store: st, body: body, key: opts.Key, marker: opts.Marker}
	if res.key == "" {
		res.key = DefaultKey
	}
	if res.marker == "" {
		res.marker = DefaultMarker
	}
	return res
}

// Initialize applies the stored preference to the container. Only "dark" enables the marker,
// absent, unreadable or unknown values leave the default light presentation.
func (t *Toggler) Initialize(ctx context.Context) {
	val, err := t.store.Load(ctx, t.key)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Printf("[DEBUG] no %s preference stored, using light", t.key)
		return
	case err != nil:
		log.Printf("[WARN] can't load %s preference, using light: %v", t.key, err)
		return
	}
	if enum.ThemeOrLight(val).IsDark() {
		t.body.Add(t.marker)
	}
}

// OnToggle flips the marker, persists the new state and returns whether dark mode is active.
// If the preference can't be saved the flip is reverted, so the container and the stored
// value never disagree because of this call.
func (t *Toggler) OnToggle(ctx context.Context) (bool, error) {
	dark := t.body.Toggle(t.marker)
	th := enum.ThemeFromDark(dark)
	if err := t.store.Save(ctx, t.key, th.String()); err != nil {
		t.body.Toggle(t.marker)
		return !dark, fmt.Errorf("save %s preference %q: %w", t.key, th, err)
	}
	log.Printf("[DEBUG] theme switched to %s", th)
	return dark, nil
}

// Dark reports whether the marker is currently applied.
func (t *Toggler) Dark() bool { return t.body.Contains(t.marker) }

// Theme returns the theme matching the current marker state.
func (t *Toggler) Theme() enum.Theme { return enum.ThemeFromDark(t.Dark()) }

// Bind wires the toggler into a document: Initialize runs when the document is ready and
// OnToggle handles clicks on the control element.
func (t *Toggler) Bind(doc *page.Document, controlID string) error {
	if controlID == "" {
		controlID = DefaultControl
	}
	ctrl := doc.ElementByID(controlID)
	if ctrl == nil {
		return fmt.Errorf("bind %q: %w", controlID, ErrNoControl)
	}
	doc.OnReady(t.Initialize)
	ctrl.OnClick(t)
	return nil
}
