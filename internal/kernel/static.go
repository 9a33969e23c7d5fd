package kernel

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the frontend assets. A request for an existing file
// under the static dir is served directly; any other GET falls back to
// index.html so client-side routes keep working. Non-GET requests that
// reach the fallback get a plain 404.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if name == "." || name == "" || strings.HasPrefix(name, "..") {
		h.serveIndex(w, r)
		return
	}

	path := filepath.Join(h.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.serveIndex(w, r)
		return
	}

	http.ServeFile(w, r, path)
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}

	// ServeFile refuses any request path containing "..", so hand it a
	// clean one; the fallback ignores the original path anyway.
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/"
	http.ServeFile(w, r2, index)
}
