package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/themer/app/server/internal"
	"github.com/umputun/themer/app/server/internal/mocks"
	"github.com/umputun/themer/app/store"
)

func TestStaticFS(t *testing.T) {
	sfs, err := StaticFS()
	require.NoError(t, err)
	f, err := sfs.Open("style.css")
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "body.dark-mode")
}

func TestHandler_URL(t *testing.T) {
	h := newTestHandler(t, nil, Config{BaseURL: "/themer"})
	assert.Equal(t, "/themer/", h.url("/"))
	assert.Equal(t, "Themer", h.title)
}

// newTestHandler creates a handler in cookie mode when st is nil.
func newTestHandler(t *testing.T, st internal.PrefStore, cfg Config) *Handler {
	t.Helper()
	h, err := New(internal.NewThemer(st, internal.ThemeConfig{}, "/"), cfg)
	require.NoError(t, err)
	return h
}

// memPrefStore returns a PrefStore mock backed by a map.
func memPrefStore(data map[string]string) *mocks.PrefStoreMock {
	return &mocks.PrefStoreMock{
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
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
