package web

import (
	"embed"
	"net/http"
	"path"
	"strings"
)

//go:embed all:static
var staticFS embed.FS

var contentTypes = map[string]string{
	".js":  "application/javascript",
	".css": "text/css",
	".svg": "image/svg+xml",
}

func handleStatic(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/static/")
	b, err := staticFS.ReadFile(path.Join("static", path.Clean("/"+p)))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if ct, ok := contentTypes[path.Ext(p)]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(b)
}
