package domain

import (
	"reflect"
)

// StateDiff represents the changes between two grid states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// GridID is always present to identify the target.
	GridID   string `json:"grid_id"`
	Revision int    `json:"revision"`

	// Selection holds the full new set of selected ids when it changed.
	Selection *[]string `json:"selection,omitempty"`

	// Edits holds only the records whose pending fields changed.
	// A removed record is present with a nil value.
	Edits map[string]map[string]any `json:"edits,omitempty"`

	Search *string        `json:"search,omitempty"`
	Sort   *SortState     `json:"sort,omitempty"`
	Cursor *EditingCursor `json:"cursor,omitempty"`

	// CursorCleared is true when the editing cursor went back to idle.
	CursorCleared bool `json:"cursor_cleared,omitempty"`

	// Records is true when the raw collection was replaced.
	Records bool `json:"records,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing observable changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		GridID:   newState.GridID,
		Revision: newState.Revision,
	}

	if oldState == nil || !oldState.Selection.Equal(newState.Selection) {
		ids := newState.Selection.IDs()
		diff.Selection = &ids
	}

	diff.Edits = diffEdits(oldState, newState)

	if oldState == nil || oldState.Search != newState.Search {
		search := newState.Search
		diff.Search = &search
	}
	if oldState == nil || oldState.Sort != newState.Sort {
		sort := newState.Sort
		diff.Sort = &sort
	}

	switch {
	case newState.Cursor != nil:
		if oldState == nil || !oldState.Cursor.Is(newState.Cursor.RecordID, newState.Cursor.Field) {
			c := *newState.Cursor
			diff.Cursor = &c
		}
	case oldState != nil && oldState.Cursor != nil:
		diff.CursorCleared = true
	}

	if oldState != nil && !sameRecords(oldState.Records, newState.Records) {
		diff.Records = true
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffEdits(old, new *State) map[string]map[string]any {
	delta := make(map[string]map[string]any)

	for _, id := range new.Edits.IDs() {
		newFields := new.Edits.Fields(id)
		if old == nil || !reflect.DeepEqual(old.Edits.Fields(id), newFields) {
			delta[id] = newFields
		}
	}

	if old != nil {
		for _, id := range old.Edits.IDs() {
			if !new.Edits.Has(id) {
				delta[id] = nil
			}
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// sameRecords compares collections by identity first; replaced collections
// always carry a new backing array.
func sameRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Selection == nil &&
		len(d.Edits) == 0 &&
		d.Search == nil &&
		d.Sort == nil &&
		d.Cursor == nil &&
		!d.CursorCleared &&
		!d.Records
}
