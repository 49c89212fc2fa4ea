// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"statsdash/internal/modkit/httpkit"
	"statsdash/internal/services/api/dashboard/domain"
	svc "statsdash/internal/services/api/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// chart-ready series for one transformer kind
	httpkit.PostJSON[domain.SeriesInput](r, "/series", h.series)

	// store one record aggregation document
	httpkit.PostJSON[domain.PutDocumentInput](r, "/documents", h.putDocument)

	// supported transformer kinds
	httpkit.Get(r, "/kinds", h.kinds)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /dashboard/series Dashboard dashboardSeries
// @Summary Chart-ready series for one transformer kind
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.SeriesInput true "Query"
// @Success 200 {object} map[string]map[string][]series.Series "ok"
// @Router /dashboard/series [post]
func (h *handlers) series(r *stdhttp.Request, in domain.SeriesInput) (any, error) {
	return h.svc.Series(r.Context(), in)
}

// swagger:route POST /dashboard/documents Dashboard dashboardPutDocument
// @Summary Store one record aggregation document
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.PutDocumentInput true "Document"
// @Success 200 {object} domain.PutDocumentResponse "ok"
// @Router /dashboard/documents [post]
func (h *handlers) putDocument(r *stdhttp.Request, in domain.PutDocumentInput) (any, error) {
	return h.svc.PutDocument(r.Context(), in)
}

// swagger:route GET /dashboard/kinds Dashboard dashboardKinds
// @Summary Supported transformer kinds
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.KindsResponse "ok"
// @Router /dashboard/kinds [get]
func (h *handlers) kinds(r *stdhttp.Request) (any, error) {
	return h.svc.Kinds(r.Context()), nil
}
