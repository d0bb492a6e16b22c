package dashboard

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFS embed.FS

// handleIndex serves the dashboard page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		h.logger.ErrorContext(r.Context(), "embedded page missing", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.metrics.IncPagesServed()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handleAssets serves the embedded static files under /assets/.
func (h *Handler) handleAssets() http.HandlerFunc {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		// embed guarantees the directory exists; this is unreachable
		panic(err)
	}
	fileServer := http.StripPrefix("/assets/", http.FileServer(http.FS(sub)))
	return fileServer.ServeHTTP
}
