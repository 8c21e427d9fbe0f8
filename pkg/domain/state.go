package domain

// SortDirection is the direction of the active sort.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// SortState holds at most one active sort field. An empty Field means unsorted.
type SortState struct {
	Field     string        `json:"field,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Active reports whether a sort field is set.
func (s SortState) Active() bool {
	return s.Field != ""
}

// EditingCursor points at the single cell currently in edit mode.
type EditingCursor struct {
	RecordID string `json:"record_id"`
	Field    string `json:"field"`
}

// Is reports whether the cursor points at the given cell.
func (c *EditingCursor) Is(recordID, field string) bool {
	return c != nil && c.RecordID == recordID && c.Field == field
}

// State is the snapshot of a grid session.
//
// A State is treated as immutable once published: the engine always returns a
// new snapshot and never writes through slices or maps it received.
type State struct {
	// GridID identifies the session (used by stores and streams).
	GridID string `json:"grid_id"`

	// Config is the normalized builder configuration.
	Config Config `json:"config"`

	// Records is the canonical raw-record source, in host order.
	Records []Record `json:"records"`

	// Columns are the resolved column descriptors. Empty when metadata failed.
	Columns []ColumnDescriptor `json:"columns"`

	Selection Selection      `json:"selection"`
	Edits     EditLedger     `json:"edits"`
	Search    string         `json:"search,omitempty"`
	Sort      SortState      `json:"sort"`
	Cursor    *EditingCursor `json:"cursor,omitempty"`

	// PendingFocus is set after a tab navigation until the host confirms the
	// focus transfer; a blur arriving meanwhile does not close the new cell.
	PendingFocus *EditingCursor `json:"pending_focus,omitempty"`

	// MetadataError is a persistent human-readable error from metadata retrieval.
	MetadataError string `json:"metadata_error,omitempty"`

	// Revision increments on every effective mutation.
	Revision int `json:"revision"`
}

// NewState creates an empty session state for the given inputs.
func NewState(gridID string, cfg Config, records []Record, columns []ColumnDescriptor) *State {
	return &State{
		GridID:  gridID,
		Config:  cfg,
		Records: records,
		Columns: columns,
	}
}

// Snapshot returns a copy of the state that can be modified field by field
// without affecting the receiver. Slices and value containers are shared, which
// is safe because they are never written in place.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	if s.Cursor != nil {
		c := *s.Cursor
		next.Cursor = &c
	}
	if s.PendingFocus != nil {
		f := *s.PendingFocus
		next.PendingFocus = &f
	}
	return &next
}

// EditingState reports whether a cell is in edit mode.
func (s *State) EditingState() bool {
	return s.Cursor != nil
}
