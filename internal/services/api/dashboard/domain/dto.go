// Package domain holds DTOs for dashboard http and service contracts
package domain

// Query window kept small and explicit
// Dates are ISO dates without time or zone

// TimeRange bounds a document query by date, inclusive on both ends
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// SeriesInput selects a transformer kind and a document window
type SeriesInput struct {
	Kind  string    `json:"kind" validate:"required,oneof=record_delta record_snapshot usage_delta usage_snapshot" example:"record_delta"`
	Range TimeRange `json:"range"`
	// optional scoping and output pruning
	Community string   `json:"community,omitempty" validate:"omitempty,uuid4" example:"7cde1b3a-9f2e-4b9c-9a6d-2f25a2a1c0de"`
	Families  []string `json:"families,omitempty" validate:"omitempty,dive,min=1,max=64" example:"resourceTypes,languages"`
}

// PutDocumentInput stores one record aggregation document
// usage documents arrive through the clickhouse pipeline, not here
type PutDocumentInput struct {
	Kind      string         `json:"kind" validate:"required,oneof=record_delta record_snapshot" example:"record_delta"`
	Community string         `json:"community,omitempty" validate:"omitempty,uuid4" example:"7cde1b3a-9f2e-4b9c-9a6d-2f25a2a1c0de"`
	Date      string         `json:"date" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	Doc       map[string]any `json:"doc" validate:"required"`
}

// PutDocumentResponse echoes the stored document id
type PutDocumentResponse struct {
	ID string `json:"id" example:"8b9d3f44-1f2a-4f4e-bd59-64f3ae0b6e10"`
}

// KindsResponse lists the transformer kinds the service can run
type KindsResponse struct {
	Kinds []string `json:"kinds" example:"record_delta,record_snapshot,usage_delta,usage_snapshot"`
}
