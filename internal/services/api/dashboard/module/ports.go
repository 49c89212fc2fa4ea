package module

import (
	"context"

	"statsdash/internal/core/transform"
	"statsdash/internal/services/api/dashboard/domain"
	dashsvc "statsdash/internal/services/api/dashboard/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptDashboardPort struct{ svc dashsvc.Service }

// Series returns chart-ready series for one transformer kind
func (a adaptDashboardPort) Series(ctx context.Context, in domain.SeriesInput) (transform.Output, error) {
	return a.svc.Series(ctx, in)
}

// PutDocument stores one record aggregation document
func (a adaptDashboardPort) PutDocument(ctx context.Context, in domain.PutDocumentInput) (domain.PutDocumentResponse, error) {
	return a.svc.PutDocument(ctx, in)
}

// Kinds lists the transformer kinds the service can run
func (a adaptDashboardPort) Kinds(ctx context.Context) domain.KindsResponse {
	return a.svc.Kinds(ctx)
}
