package domain

import (
	"context"

	"statsdash/internal/core/transform"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Series(ctx context.Context, in SeriesInput) (transform.Output, error)
	PutDocument(ctx context.Context, in PutDocumentInput) (PutDocumentResponse, error)
	Kinds(ctx context.Context) KindsResponse
}
