// Package internal provides the per-request theme page shared by the web and api handlers.
package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/umputun/themer/app/enum"
	"github.com/umputun/themer/app/page"
	"github.com/umputun/themer/app/store"
	"github.com/umputun/themer/app/theme"
)

//go:generate moq -out mocks/prefstore.go -pkg mocks -skip-ensure -fmt goimports . PrefStore

// ClientCookie holds the visitor id used as the preference scope in db mode.
const ClientCookie = "themer-client"

const cookieMaxAge = 365 * 24 * 60 * 60 // 1 year

// PrefStore is the persistent preference store, scoped by visitor.
type PrefStore interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
}

// ThemeConfig names the preference key, the body marker class and the toggle control id.
type ThemeConfig struct {
	Key     string
	Marker  string
	Control string
}

// Themer opens theme pages for incoming requests.
type Themer struct {
	store      PrefStore // nil keeps the preference in a browser cookie
	cfg        ThemeConfig
	cookiePath string
}

// NewThemer makes a Themer. Pass nil store to keep preferences in cookies.
func NewThemer(st PrefStore, cfg ThemeConfig, cookiePath string) *Themer {
	if cfg.Key == "" {
		cfg.Key = theme.DefaultKey
	}
	if cfg.Marker == "" {
		cfg.Marker = theme.DefaultMarker
	}
	if cfg.Control == "" {
		cfg.Control = theme.DefaultControl
	}
	if cookiePath == "" {
		cookiePath = "/"
	}
	return &Themer{store: st, cfg: cfg, cookiePath: cookiePath}
}

// Page is a ready document with a toggler bound to its control.
type Page struct {
	Doc     *page.Document
	toggler *theme.Toggler
	control string
}

// Open builds the document for the request, binds the toggler and fires the ready callback,
// so the returned page already reflects the stored preference.
func (t *Themer) Open(w http.ResponseWriter, r *http.Request) (*Page, error) {
	doc := page.New(t.cfg.Control)
	tg := theme.New(t.storage(w, r), doc.Body.Classes, theme.Options{Key: t.cfg.Key, Marker: t.cfg.Marker})
	if err := tg.Bind(doc, t.cfg.Control); err != nil {
		return nil, fmt.Errorf("bind toggler: %w", err)
	}
	doc.Ready(r.Context())
	return &Page{Doc: doc, toggler: tg, control: t.cfg.Control}, nil
}

// Toggle clicks the toggle control and returns the resulting dark state.
func (p *Page) Toggle(ctx context.Context) (bool, error) {
	dark, err := p.Doc.Click(ctx, p.control)
	if err != nil {
		return p.toggler.Dark(), fmt.Errorf("toggle theme: %w", err)
	}
	return dark, nil
}

// Theme returns the theme currently shown by the page.
func (p *Page) Theme() enum.Theme { return p.toggler.Theme() }

// BodyClass returns the class attribute of the page body.
func (p *Page) BodyClass() string { return p.Doc.Body.Classes.String() }

// Control returns the id of the toggle control.
func (p *Page) Control() string { return p.control }

func (t *Themer) storage(w http.ResponseWriter, r *http.Request) theme.Storage {
	if t.store == nil {
		return &CookieStorage{w: w, r: r, path: t.cookiePath}
	}
	return &DBStorage{store: t.store, scope: t.clientID(w, r)}
}

// clientID returns the visitor id from the client cookie, issuing a new one if missing or malformed.
func (t *Themer) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil {
		if id, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     t.cookiePath,
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// CookieStorage keeps preferences in browser cookies, the server-side view of origin-local storage.
type CookieStorage struct {
	w    http.ResponseWriter
	r    *http.Request
	path string
}

// Load returns the cookie value for key.
func (s *CookieStorage) Load(_ context.Context, key string) (string, error) {
	c, err := s.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && c.Value == "") {
		return "", theme.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cookie %q: %w", key, err)
	}
	return c.Value, nil
}

// Save sets the cookie for key on the response. An invalid cookie is rejected rather than dropped.
func (s *CookieStorage) Save(_ context.Context, key, value string) error {
	c := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     s.path,
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie %q: %w", key, err)
	}
	http.SetCookie(s.w, c)
	return nil
}

// DBStorage binds a PrefStore to one visitor scope.
type DBStorage struct {
	store PrefStore
	scope string
}

// Load returns the stored value, translating a missing row to theme.ErrNotFound.
func (s *DBStorage) Load(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, s.scope, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, theme.ErrNotFound) {
			return "", theme.ErrNotFound
		}
		return "", fmt.Errorf("load %s/%s: %w", s.scope, key, err)
	}
	return v, nil
}

// Save writes the value for the scope.
func (s *DBStorage) Save(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, s.scope, key, value); err != nil {
		return fmt.Errorf("save %s/%s: %w", s.scope, key, err)
	}
	return nil
}
