package http

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the dashboard frontend from dir. Paths that do
// not match a file fall back to index.html so the page can be loaded
// from any bookmark. API routes are registered with more specific
// patterns and never reach this handler.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			full := filepath.Join(dir, filepath.Clean(r.URL.Path))
			if _, err := os.Stat(full); err == nil {
				fs.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	})
}
