package flatfiles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-media/vitrine/internal/model"
)

func newArchive(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestClient_Browse(t *testing.T) {
	c := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/browse", r.URL.Path)
		assert.Equal(t, "/media/movies", r.URL.Query().Get("path"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"folders": [{"name": "2001", "path": "/media/movies/2001"}],
			"files": [{"name": "movie.mkv", "path": "/media/movies/movie.mkv"}]
		}`))
	})

	listing, err := c.Browse(context.Background(), "/media/movies")
	require.NoError(t, err)
	require.Len(t, listing.Folders, 1)
	require.Len(t, listing.Files, 1)
	assert.Equal(t, "/media/movies/2001", listing.Folders[0].Path)
	assert.Equal(t, "movie.mkv", listing.Files[0].Name)
}

func TestClient_Browse_MissingPath(t *testing.T) {
	c := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Browse(context.Background(), "/missing")
	assert.True(t, model.IsNotFoundError(err))
}

func TestClient_Browse_UpstreamFailure(t *testing.T) {
	c := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Browse(context.Background(), "/media")
	assert.True(t, model.IsUpstreamError(err))
}

func TestClient_Search(t *testing.T) {
	c := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "alien", r.URL.Query().Get("keyword"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "alien.mkv", "path": "/media/alien.mkv"},
			{"name": "aliens.mkv", "path": "/media/aliens.mkv"}
		]`))
	})

	entries, err := c.Search(context.Background(), "alien")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/media/alien.mkv", entries[0].Path)
}

func TestClient_Ping(t *testing.T) {
	c := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, c.Ping(context.Background()))

	down := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(t, down.Ping(context.Background()))
}
