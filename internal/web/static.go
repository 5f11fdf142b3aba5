// Package web serves the single-page frontend: files from a public
// directory, with client-side routes rewritten to index.html.
package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
)

// spaPaths are client-side routes that must serve the app shell
var spaPaths = map[string]bool{
	"/":         true,
	"/about":    true,
	"/login":    true,
	"/register": true,
	"/profile":  true,
}

// StaticHandler serves files from a local directory
type StaticHandler struct {
	root string
}

// NewStaticHandler creates a static handler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: dir}
}

// ServeHTTP serves the requested file. Client-side routes and
// directories resolve to index.html; traversal outside the root is
// rejected; misses return a JSON 404.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqPath := r.URL.Path
	if spaPaths[reqPath] || strings.HasPrefix(reqPath, "/game/") {
		reqPath = "/index.html"
	}

	full := filepath.Join(h.root, filepath.FromSlash(reqPath))
	full = filepath.Clean(full)
	if !strings.HasPrefix(full, filepath.Clean(h.root)+string(filepath.Separator)) {
		apierr.WriteError(w, apierr.NewForbiddenError())
		return
	}

	info, err := os.Stat(full)
	if err != nil {
		apierr.WriteError(w, apierr.NewNotFoundError("page was not found"))
		return
	}
	if info.IsDir() {
		full = filepath.Join(full, "index.html")
		if _, err := os.Stat(full); err != nil {
			apierr.WriteError(w, apierr.NewNotFoundError("page was not found"))
			return
		}
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, full)
}
