// Package dashboard is the HTTP layer. It binds the precomputed views to the
// chart page and the JSON API; all aggregation lives in report.
package dashboard

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"

	"mortalidad/internal/platform/metrics"
	"mortalidad/internal/platform/middleware"
	"mortalidad/internal/report"
	dErrors "mortalidad/pkg/domain-errors"
)

var departmentCodeRe = regexp.MustCompile(`^[0-9]{2}$`)

// Handler serves the dashboard page, its assets, and the view API.
type Handler struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	snapshot *report.Snapshot
	geo      []byte // boundary FeatureCollection, served verbatim
}

// New creates a new dashboard Handler over an immutable snapshot.
func New(snapshot *report.Snapshot, geo []byte, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		metrics:  m,
		snapshot: snapshot,
		geo:      geo,
	}
}

// handleGeo serves the boundary document for the choropleth exactly as it
// was read from disk.
func (h *Handler) handleGeo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.geo)
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(15 * time.Second))
	router.Use(middleware.Latency(h.metrics))

	router.Get("/", h.handleIndex)
	router.Get("/assets/*", h.handleAssets())
	router.Get("/healthz", h.handleHealth)
	router.Get("/api/summary", h.handleSummary)
	router.Get("/api/geo", h.handleGeo)
	router.Get("/api/views/{view}", h.handleView)

	r.Mount("/", router)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot.Summary())
}

// handleView serves one aggregated view as an ordered tuple sequence. The
// optional department query parameter narrows every view to one department;
// a code with no records yields empty views, never an error.
func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	views, err := h.viewsFor(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "rejected view request",
			"view", name,
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, err)
		return
	}

	var rows any
	switch name {
	case "departments":
		rows = views.Departments
	case "months":
		rows = views.Months
	case "violent-municipalities":
		rows = views.ViolentMunicipalities
	case "lowest-mortality":
		rows = views.LowestMortality
	case "causes":
		rows = views.Causes
	case "sex-by-department":
		rows = views.SexByDepartment
	case "age-groups":
		rows = views.AgeGroups
	default:
		writeError(w, dErrors.New(dErrors.CodeNotFound, "unknown view "+name))
		return
	}

	h.metrics.IncViewRequests(name)
	writeJSON(w, http.StatusOK, viewResponse{View: name, Rows: rows})
}

// viewsFor picks the precomputed views or a filtered recompute.
func (h *Handler) viewsFor(r *http.Request) (report.Views, error) {
	dept := r.URL.Query().Get("department")
	if dept == "" {
		return h.snapshot.Views(), nil
	}
	if !departmentCodeRe.MatchString(dept) {
		return report.Views{}, dErrors.New(dErrors.CodeBadRequest,
			"department must be a 2-digit DANE code")
	}
	return h.snapshot.Filter(dept), nil
}
