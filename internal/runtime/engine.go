package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// Engine is the grid state reducer. It holds no session state: every call
// receives a State snapshot and returns a new one.
type Engine struct {
	metadata  ports.MetadataProvider
	formatter *Formatter
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLocation sets the zone datetimes are displayed in (default UTC).
func WithLocation(loc *time.Location) EngineOption {
	return func(e *Engine) {
		e.formatter = NewFormatter(loc)
	}
}

// WithClock overrides the time source used for hook timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine backed by the given metadata provider.
func NewEngine(metadata ports.MetadataProvider, opts ...EngineOption) *Engine {
	e := &Engine{
		metadata:  metadata,
		formatter: NewFormatter(nil),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Formatter exposes the engine's value formatter.
func (e *Engine) Formatter() *Formatter {
	return e.formatter
}

// Start validates the configuration, resolves column metadata once and returns
// the initial state. A metadata failure is not returned as an error: the state
// carries a readable message and no columns.
func (e *Engine) Start(ctx context.Context, gridID string, cfg domain.Config, records []domain.Record) (*domain.State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg, _ = cfg.Normalize()

	state := domain.NewState(gridID, cfg, slices.Clone(records), nil)
	columns, err := e.resolveColumns(ctx, cfg)
	if err != nil {
		metaErr := &domain.MetadataError{ObjectName: cfg.ObjectName, Err: err}
		e.logger.Warn("metadata retrieval failed", "grid_id", gridID, "object", cfg.ObjectName, "err", err)
		if e.hooks.OnMetadataError != nil {
			e.hooks.OnMetadataError(ctx, metaErr)
		}
		state.Columns = []domain.ColumnDescriptor{}
		state.MetadataError = metaErr.Error()
		return state, nil
	}

	state.Columns = columns
	e.logger.Debug("grid started", "grid_id", gridID, "object", cfg.ObjectName, "records", len(records), "columns", len(columns))
	return state, nil
}

func (e *Engine) resolveColumns(ctx context.Context, cfg domain.Config) ([]domain.ColumnDescriptor, error) {
	if e.metadata == nil {
		return nil, fmt.Errorf("no metadata provider configured")
	}
	meta, err := e.metadata.DescribeFields(ctx, cfg.ObjectName, cfg.Fields)
	if err != nil {
		return nil, err
	}
	columns, missing := BuildColumns(cfg, meta)
	if len(missing) > 0 {
		e.logger.Debug("fields without metadata skipped", "object", cfg.ObjectName, "fields", missing)
	}
	return columns, nil
}

// Apply reduces one event. Events targeting unknown records or columns are
// no-ops and return the input state unchanged. The only error is
// domain.ErrUnknownEvent.
func (e *Engine) Apply(ctx context.Context, state *domain.State, ev domain.Event) (*domain.State, []domain.ActionRequest, error) {
	if state == nil {
		return nil, nil, fmt.Errorf("apply %s: nil state", ev.Type)
	}

	next, actions, err := e.reduce(state, ev)
	if err != nil {
		return nil, nil, err
	}

	changed := next != state
	if changed {
		next.Revision = state.Revision + 1
		before, after := outputs(state), outputs(next)
		if !reflect.DeepEqual(before, after) {
			actions = append(actions, domain.ActionRequest{Type: domain.ActionOutputsChanged, Payload: after})
		}
	}

	e.logger.Debug("event applied",
		"grid_id", state.GridID,
		"type", ev.Type,
		"revision", next.Revision,
		"changed", changed,
		"actions", len(actions),
	)
	if e.hooks.OnEventApplied != nil {
		e.hooks.OnEventApplied(ctx, &domain.AppliedEvent{
			Timestamp: e.now(),
			GridID:    state.GridID,
			Type:      ev.Type,
			Revision:  next.Revision,
			Changed:   changed,
		})
	}
	return next, actions, nil
}

func (e *Engine) reduce(s *domain.State, ev domain.Event) (*domain.State, []domain.ActionRequest, error) {
	switch ev.Type {
	case domain.EventToggleSelection:
		return toggleSelection(s, ev.RecordID), nil, nil
	case domain.EventSelectAll:
		return selectAll(s, DeriveView(s.Records, s.Columns, s.Edits, s.Search, s.Sort)), nil, nil
	case domain.EventClearSelection:
		return clearSelection(s), nil, nil

	case domain.EventSetEdit:
		return setEdit(s, ev.RecordID, ev.Field, ev.Value), nil, nil
	case domain.EventDiscardEdits:
		return discardEdits(s, ev.RecordID), nil, nil

	case domain.EventSetSearch:
		return setSearch(s, ev.Term), nil, nil
	case domain.EventSortBy:
		return sortBy(s, ev.Field), nil, nil
	case domain.EventSetSort:
		return setSort(s, ev.Field, ev.Direction), nil, nil
	case domain.EventClearSort:
		return clearSort(s), nil, nil

	case domain.EventStartEdit:
		return startEdit(s, ev.RecordID, ev.Field), nil, nil
	case domain.EventBlur:
		return blur(s), nil, nil
	case domain.EventCommit, domain.EventCancel:
		return stopEdit(s), nil, nil
	case domain.EventTab:
		next, actions := tab(s, ev.Value, ev.Backward)
		return next, actions, nil
	case domain.EventFocusSettled:
		return focusSettled(s), nil, nil

	case domain.EventActivateLink:
		return s, activateLink(s, ev.RecordID, ev.Field), nil

	case domain.EventReplaceRecords:
		return replaceRecords(s, ev.Records), nil, nil
	case domain.EventReset:
		return reset(s), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, ev.Type)
}

// replaceRecords swaps the raw collection. Selection and edits are sticky;
// with the prune policy, entries for vanished identifiers are dropped.
func replaceRecords(s *domain.State, records []domain.Record) *domain.State {
	next := s.Snapshot()
	next.Records = slices.Clone(records)
	if next.Records == nil {
		next.Records = []domain.Record{}
	}

	index := domain.IndexRecords(next.Records)
	present := func(id string) bool {
		_, ok := index[id]
		return ok
	}

	if s.Config.StalePolicy == domain.StalePrune {
		next.Selection = s.Selection.Retain(present)
		next.Edits = s.Edits.Retain(present)
	}
	if next.Cursor != nil && !present(next.Cursor.RecordID) {
		next.Cursor = nil
		next.PendingFocus = nil
	}
	return next
}

// reset clears all interaction state but keeps records, columns and any
// metadata error.
func reset(s *domain.State) *domain.State {
	fresh := domain.NewState(s.GridID, s.Config, s.Records, s.Columns)
	fresh.MetadataError = s.MetadataError
	fresh.Revision = s.Revision
	if domain.Diff(s, fresh) == nil {
		return s
	}
	return fresh
}

// Project derives the full view of a state.
func (e *Engine) Project(ctx context.Context, state *domain.State) *domain.View {
	start := e.now()
	view := project(state, e.formatter)
	if e.hooks.OnProjected != nil {
		e.hooks.OnProjected(ctx, &domain.ProjectionEvent{
			Timestamp:    start,
			GridID:       state.GridID,
			VisibleRows:  len(view.Rows),
			TotalRecords: view.TotalRecords,
			Duration:     e.now().Sub(start),
		})
	}
	return view
}

// Outputs computes the host-facing outputs of a state.
func (e *Engine) Outputs(state *domain.State) domain.Outputs {
	return outputs(state)
}
