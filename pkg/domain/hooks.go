package domain

import (
	"context"
	"time"
)

// AppliedEvent describes an event after it was applied to a state.
type AppliedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	GridID    string    `json:"grid_id"`
	Type      EventType `json:"type"`
	Revision  int       `json:"revision"`
	// Changed is false when the event was a no-op (e.g. an unknown record id).
	Changed bool `json:"changed"`
}

// ProjectionEvent describes one view recomputation.
type ProjectionEvent struct {
	Timestamp    time.Time     `json:"timestamp"`
	GridID       string        `json:"grid_id"`
	VisibleRows  int           `json:"visible_rows"`
	TotalRecords int           `json:"total_records"`
	Duration     time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnEventApplied  func(context.Context, *AppliedEvent)
	OnProjected     func(context.Context, *ProjectionEvent)
	OnMetadataError func(context.Context, *MetadataError)
}
