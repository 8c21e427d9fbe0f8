package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Combine merges several hook sets into one. Nil callbacks are skipped and
// the rest run in argument order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var applied []func(context.Context, *domain.AppliedEvent)
	var projected []func(context.Context, *domain.ProjectionEvent)
	var metaErr []func(context.Context, *domain.MetadataError)
	for _, h := range hooks {
		if h.OnEventApplied != nil {
			applied = append(applied, h.OnEventApplied)
		}
		if h.OnProjected != nil {
			projected = append(projected, h.OnProjected)
		}
		if h.OnMetadataError != nil {
			metaErr = append(metaErr, h.OnMetadataError)
		}
	}

	var out domain.LifecycleHooks
	if len(applied) > 0 {
		out.OnEventApplied = func(ctx context.Context, e *domain.AppliedEvent) {
			for _, fn := range applied {
				fn(ctx, e)
			}
		}
	}
	if len(projected) > 0 {
		out.OnProjected = func(ctx context.Context, e *domain.ProjectionEvent) {
			for _, fn := range projected {
				fn(ctx, e)
			}
		}
	}
	if len(metaErr) > 0 {
		out.OnMetadataError = func(ctx context.Context, e *domain.MetadataError) {
			for _, fn := range metaErr {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks logs every lifecycle event. Applied events and projections go
// to debug, metadata failures to warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEventApplied: func(ctx context.Context, e *domain.AppliedEvent) {
			logger.DebugContext(ctx, "event_applied",
				"grid_id", e.GridID,
				"type", e.Type,
				"revision", e.Revision,
				"changed", e.Changed,
			)
		},
		OnProjected: func(ctx context.Context, e *domain.ProjectionEvent) {
			logger.DebugContext(ctx, "view_projected",
				"grid_id", e.GridID,
				"visible_rows", e.VisibleRows,
				"total_records", e.TotalRecords,
				"duration", e.Duration,
			)
		},
		OnMetadataError: func(ctx context.Context, e *domain.MetadataError) {
			logger.WarnContext(ctx, "metadata_error", "object", e.ObjectName, "err", e.Err)
		},
	}
}
