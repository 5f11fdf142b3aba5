package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *StaticHandler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "index.html"), []byte("<html>assets</html>"), 0o644))
	return NewStaticHandler(dir)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServesFile(t *testing.T) {
	rec := get(newTestHandler(t), "/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log('hi')", rec.Body.String())
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestClientRoutesServeIndex(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/", "/about", "/login", "/register", "/profile", "/game/5"} {
		rec := get(h, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "<html>app</html>", rec.Body.String(), path)
	}
}

func TestDirectoryServesItsIndex(t *testing.T) {
	rec := get(newTestHandler(t), "/assets")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>assets</html>", rec.Body.String())
}

func TestMissingFileReturnsJSON404(t *testing.T) {
	rec := get(newTestHandler(t), "/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestTraversalRejected(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/static", nil)
	req.URL.Path = "/../secret.txt"
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
