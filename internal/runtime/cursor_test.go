package runtime_test

import (
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_StartAndStop(t *testing.T) {
	tests := []struct {
		name string
		stop domain.Event
	}{
		{"Blur", domain.Event{Type: domain.EventBlur}},
		{"Enter", domain.Event{Type: domain.EventCommit}},
		{"Escape", domain.Event{Type: domain.EventCancel}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, state := startGrid(t, domain.SelectionMulti)

			state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Name"})
			require.True(t, state.Cursor.Is("1", "Name"))

			state, _ = apply(t, engine, state, domain.Event{Type: domain.EventSetEdit, RecordID: "1", Field: "Name", Value: "typed"})
			state, _ = apply(t, engine, state, tt.stop)
			assert.Nil(t, state.Cursor)

			v, ok := state.Edits.Get("1", "Name")
			require.True(t, ok, "leaving the editor keeps committed input")
			assert.Equal(t, "typed", v)
		})
	}
}

func TestCursor_StartEditMovesCursor(t *testing.T) {
	engine, state := startGrid(t, domain.SelectionMulti)

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Name"})
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "2", Field: "Amount"})
	assert.True(t, state.Cursor.Is("2", "Amount"))

	next, _ := apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "2", Field: "Amount"})
	assert.Same(t, state, next)
}

func TestCursor_TabNavigation(t *testing.T) {
	engine, state := startGrid(t, domain.SelectionViewOnly)
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Name"})

	state, actions := apply(t, engine, state, domain.Event{Type: domain.EventTab, Value: "Renamed"})
	assert.Equal(t, []string{domain.ActionFocusCell, domain.ActionOutputsChanged}, actionTypes(actions))
	assert.Equal(t, domain.EditingCursor{RecordID: "2", Field: "Name"}, actions[0].Payload)
	assert.True(t, state.Cursor.Is("2", "Name"))
	require.NotNil(t, state.PendingFocus)

	v, _ := state.Edits.Get("1", "Name")
	assert.Equal(t, "Renamed", v, "tab commits the current input")

	// The blur of the cell just left must not close the new editor.
	next, _ := apply(t, engine, state, domain.Event{Type: domain.EventBlur})
	assert.Same(t, state, next)

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventFocusSettled})
	assert.Nil(t, state.PendingFocus)
	assert.True(t, state.Cursor.Is("2", "Name"))

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventBlur})
	assert.Nil(t, state.Cursor)
}

func TestCursor_TabFollowsViewOrder(t *testing.T) {
	engine, state := startGrid(t, domain.SelectionMulti)
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventSortBy, Field: "Amount"})
	// View order is 3, 1, 2.
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "3", Field: "Amount"})

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventTab, Value: 50})
	assert.True(t, state.Cursor.Is("1", "Amount"))
	assert.False(t, state.Edits.Has("3"), "committing the original value leaves no edit")

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventFocusSettled})
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventTab, Value: 100, Backward: true})
	assert.True(t, state.Cursor.Is("3", "Amount"))
}

func TestCursor_TabOutOfBounds(t *testing.T) {
	tests := []struct {
		name     string
		recordID string
		backward bool
	}{
		{"Forward From Last Row", "3", false},
		{"Backward From First Row", "1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, state := startGrid(t, domain.SelectionMulti)
			state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: tt.recordID, Field: "Name"})

			state, actions := apply(t, engine, state, domain.Event{Type: domain.EventTab, Value: "x", Backward: tt.backward})
			assert.Nil(t, state.Cursor)
			assert.Nil(t, state.PendingFocus)
			assert.NotContains(t, actionTypes(actions), domain.ActionFocusCell)
			assert.True(t, state.Edits.Has(tt.recordID), "the value is still committed")
		})
	}
}

func TestCursor_TabWhenCommitHidesRow(t *testing.T) {
	engine, state := startGrid(t, domain.SelectionMulti)
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventSetSearch, Term: "deal"})
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Name"})

	// The committed value no longer matches the search, so the row leaves the view.
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventTab, Value: "Other"})
	assert.Nil(t, state.Cursor)
}

func TestCursor_ReplaceRecordsDropsVanishedCursor(t *testing.T) {
	engine, state := startGrid(t, domain.SelectionMulti)
	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Name"})

	state, _ = apply(t, engine, state, domain.Event{Type: domain.EventReplaceRecords, Records: opportunities()[1:]})
	assert.Nil(t, state.Cursor)
}
