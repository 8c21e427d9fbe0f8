package domain

// EventType names a user interaction.
type EventType string

const (
	EventToggleSelection EventType = "toggle_selection"
	EventSelectAll       EventType = "select_all"
	EventClearSelection  EventType = "clear_selection"

	EventSetEdit      EventType = "set_edit"
	EventDiscardEdits EventType = "discard_edits"

	EventSetSearch EventType = "set_search"
	EventSortBy    EventType = "sort_by"
	EventSetSort   EventType = "set_sort"
	EventClearSort EventType = "clear_sort"

	EventStartEdit    EventType = "start_edit"
	EventBlur         EventType = "blur"
	EventCommit       EventType = "commit"
	EventCancel       EventType = "cancel"
	EventTab          EventType = "tab"
	EventFocusSettled EventType = "focus_settled"

	EventActivateLink EventType = "activate_link"

	EventReplaceRecords EventType = "replace_records"
	EventReset          EventType = "reset"
)

// Event is a single interaction applied to a State.
// Only the fields relevant to Type are read.
type Event struct {
	Type EventType `json:"type"`

	// RecordID targets a row (toggle, edit, start_edit, activate_link, discard_edits).
	RecordID string `json:"record_id,omitempty"`

	// Field targets a column (set_edit, start_edit, activate_link, sort).
	Field string `json:"field,omitempty"`

	// Value is the new cell value (set_edit, tab).
	Value any `json:"value,omitempty"`

	// Term is the search term (set_search).
	Term string `json:"term,omitempty"`

	// Direction is the explicit sort direction (set_sort).
	Direction SortDirection `json:"direction,omitempty"`

	// Backward selects Shift+Tab (tab).
	Backward bool `json:"backward,omitempty"`

	// Records is the new raw collection (replace_records).
	Records []Record `json:"records,omitempty"`
}
