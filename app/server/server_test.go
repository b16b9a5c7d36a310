package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/themer/app/store"
)

func TestServer_Ping(t *testing.T) {
	srv, err := New(nil, Config{Address: ":8080", Version: "test"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, "themer", rec.Header().Get("App-Name"))
}

func TestServer_Static(t *testing.T) {
	srv, err := New(nil, Config{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/static/style.css", http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dark-mode")
}

func TestServer_ToggleFlowWithStore(t *testing.T) {
	st, err := store.New(t.TempDir() + "/test.db")
	require.NoError(t, err)
	defer st.Close()

	srv, err := New(st, Config{Title: "Shop"})
	require.NoError(t, err)
	h := srv.routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Shop</title>")
	assert.NotContains(t, rec.Body.String(), `class="dark-mode"`)
	var client *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "themer-client" {
			client = c
		}
	}
	require.NotNil(t, client)

	req := httptest.NewRequest(http.MethodPost, "/api/theme/toggle", http.NoBody)
	req.AddCookie(client)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Theme string `json:"theme"`
		Dark  bool   `json:"dark"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dark", resp.Theme)
	assert.True(t, resp.Dark)

	v, err := st.Get(context.Background(), client.Value, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.AddCookie(client)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `class="dark-mode"`)
}

func TestServer_CustomThemeConfig(t *testing.T) {
	srv, err := New(nil, Config{ThemeKey: "ui", ThemeMarker: "night", ThemeControl: "switch"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "ui", Value: "dark"})
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="night"`)
	assert.Contains(t, rec.Body.String(), `id="switch"`)
}

func TestServer_BaseURL(t *testing.T) {
	srv, err := New(nil, Config{BaseURL: "/themer"})
	require.NoError(t, err)
	h := srv.handler()

	t.Run("redirects bare base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/themer", http.NoBody))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/themer/", rec.Header().Get("Location"))
	})

	t.Run("serves page under base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/themer/", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/themer/web/theme"`)
	})

	t.Run("toggle cookie scoped to base", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/themer/web/theme", http.NoBody))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/themer/", rec.Header().Get("Location"))
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "/themer/", cookies[0].Path)
	})
}

func TestServer_Defaults(t *testing.T) {
	s := &Server{}
	assert.Equal(t, int64(64*1024), s.bodySizeLimit())
	assert.Equal(t, int64(1000), s.requestsPerSec())
	assert.Equal(t, 5*time.Second, s.shutdownTimeout())
	assert.Equal(t, "/", s.cookiePath())

	s = &Server{cfg: Config{BodySizeLimit: 10, RequestsPerSec: 5, ShutdownTimeout: time.Second}, baseURL: "/x"}
	assert.Equal(t, int64(10), s.bodySizeLimit())
	assert.Equal(t, int64(5), s.requestsPerSec())
	assert.Equal(t, time.Second, s.shutdownTimeout())
	assert.Equal(t, "/x/", s.cookiePath())
}

func TestServer_Run(t *testing.T) {
	srv, err := New(nil, Config{Address: "127.0.0.1:18585", ShutdownTimeout: time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18585/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
