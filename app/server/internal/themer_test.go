package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/themer/app/server/internal/mocks"
	"github.com/umputun/themer/app/store"
	"github.com/umputun/themer/app/theme"
)

func TestThemer_CookieMode(t *testing.T) {
	th := NewThemer(nil, ThemeConfig{}, "")
	assert.Equal(t, ThemeConfig{Key: "theme", Marker: "dark-mode", Control: "theme-toggle"}, th.cfg)

	tests := []struct {
		name       string
		cookie     string
		wantDark   bool
		wantToggle string
	}{
		{name: "no cookie", cookie: "", wantDark: false, wantToggle: "dark"},
		{name: "light", cookie: "light", wantDark: false, wantToggle: "dark"},
		{name: "dark", cookie: "dark", wantDark: true, wantToggle: "light"},
		{name: "garbage", cookie: "neon", wantDark: false, wantToggle: "dark"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "theme", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()

			p, err := th.Open(rec, req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDark, p.Theme().IsDark())
			assert.Equal(t, "theme-toggle", p.Control())

			dark, err := p.Toggle(req.Context())
			require.NoError(t, err)
			assert.Equal(t, !tc.wantDark, dark)
			assert.Equal(t, dark, p.BodyClass() == "dark-mode")

			c := findCookie(rec, "theme")
			require.NotNil(t, c)
			assert.Equal(t, tc.wantToggle, c.Value)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, "/", c.Path)
			assert.Nil(t, findCookie(rec, ClientCookie), "cookie mode does not issue client id")
		})
	}
}

func TestThemer_DBMode(t *testing.T) {
	data := map[string]string{}
	st := &mocks.PrefStoreMock{
		GetFunc: func(_ context.Context, scope, key string) (string, error) {
			v, ok := data[scope+"/"+key]
			if !ok {
				return "", store.ErrNotFound
			}
			return v, nil
		},
		SetFunc: func(_ context.Context, scope, key, value string) error {
			data[scope+"/"+key] = value
			return nil
		},
	}
	th := NewThemer(st, ThemeConfig{}, "/themer/")

	t.Run("new visitor gets client id and light page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		rec := httptest.NewRecorder()
		p, err := th.Open(rec, req)
		require.NoError(t, err)
		assert.False(t, p.Theme().IsDark())
		assert.Empty(t, p.BodyClass())

		c := findCookie(rec, ClientCookie)
		require.NotNil(t, c)
		_, err = uuid.Parse(c.Value)
		require.NoError(t, err)
		assert.Equal(t, "/themer/", c.Path)
	})

	t.Run("known visitor toggles in store", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
		rec := httptest.NewRecorder()

		p, err := th.Open(rec, req)
		require.NoError(t, err)
		dark, err := p.Toggle(req.Context())
		require.NoError(t, err)
		assert.True(t, dark)
		assert.Equal(t, "dark", data[id+"/theme"])
		assert.Nil(t, findCookie(rec, ClientCookie), "existing id is kept")

		// next visit sees dark
		req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
		p, err = th.Open(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.True(t, p.Theme().IsDark())
		assert.Equal(t, "dark-mode", p.BodyClass())
	})

	t.Run("malformed client id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "not-a-uuid"})
		rec := httptest.NewRecorder()
		_, err := th.Open(rec, req)
		require.NoError(t, err)
		c := findCookie(rec, ClientCookie)
		require.NotNil(t, c)
		assert.NotEqual(t, "not-a-uuid", c.Value)
	})
}

func TestThemer_DBModeSaveFailure(t *testing.T) {
	st := &mocks.PrefStoreMock{
		GetFunc: func(context.Context, string, string) (string, error) { return "dark", nil },
		SetFunc: func(context.Context, string, string, string) error { return errors.New("disk full") },
	}
	th := NewThemer(st, ThemeConfig{}, "/")
	req := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
	p, err := th.Open(httptest.NewRecorder(), req)
	require.NoError(t, err)

	dark, err := p.Toggle(req.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, dark, "page keeps dark when save fails")
	assert.Equal(t, "dark-mode", p.BodyClass())
}

func TestThemer_CookieModeInvalidKey(t *testing.T) {
	th := NewThemer(nil, ThemeConfig{Key: "ui theme"}, "/")
	req := httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody)
	rec := httptest.NewRecorder()
	p, err := th.Open(rec, req)
	require.NoError(t, err)

	dark, err := p.Toggle(req.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid cookie "ui theme"`)
	assert.False(t, dark, "flip is reverted when the cookie can't be set")
	assert.Empty(t, p.BodyClass())
	assert.Empty(t, rec.Result().Cookies())
}

func TestDBStorage_Load(t *testing.T) {
	t.Run("store not found maps to theme not found", func(t *testing.T) {
		s := &DBStorage{store: &mocks.PrefStoreMock{
			GetFunc: func(context.Context, string, string) (string, error) { return "", store.ErrNotFound },
		}, scope: "x"}
		_, err := s.Load(context.Background(), "theme")
		require.ErrorIs(t, err, theme.ErrNotFound)
	})

	t.Run("other errors wrapped", func(t *testing.T) {
		s := &DBStorage{store: &mocks.PrefStoreMock{
			GetFunc: func(context.Context, string, string) (string, error) { return "", errors.New("conn refused") },
		}, scope: "x"}
		_, err := s.Load(context.Background(), "theme")
		require.Error(t, err)
		assert.NotErrorIs(t, err, theme.ErrNotFound)
		assert.Contains(t, err.Error(), "load x/theme")
	})
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
