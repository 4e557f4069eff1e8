// Package web serves the rendered comment body over HTTP for visual QA.
// The debug endpoint shows every banner in the pool so art changes can be
// inspected without posting comments anywhere.
package web

import (
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/previewops/preview-comment/internal/markdown"
)

var pageTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>
body { font-family: monospace; max-width: 80ch; margin: 2rem auto; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<pre>{{.Body}}</pre>
</body>
</html>
`))

// Handler renders preview pages for a fixed set of render inputs.
type Handler struct {
	previewURL string
	options    markdown.Options
}

// NewHandler creates a web handler around the given render inputs.
func NewHandler(previewURL string, options markdown.Options) *Handler {
	return &Handler{previewURL: previewURL, options: options}
}

// RegisterRoutes registers the preview routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handlePreview).Methods(http.MethodGet)
	r.HandleFunc("/debug", h.handleDebug).Methods(http.MethodGet)
}

// handlePreview shows the body exactly as it would be posted.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "Comment preview", h.options)
}

// handleDebug shows every art choice in the pool.
func (h *Handler) handleDebug(w http.ResponseWriter, r *http.Request) {
	opts := h.options
	opts.Debug = true
	h.renderPage(w, "Banner pool (debug)", opts)
}

func (h *Handler) renderPage(w http.ResponseWriter, title string, opts markdown.Options) {
	data := struct {
		Title string
		Body  string
	}{
		Title: title,
		Body:  markdown.Render(h.previewURL, opts),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
