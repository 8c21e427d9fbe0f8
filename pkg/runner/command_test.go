package runner

import (
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Events(t *testing.T) {
	tests := []struct {
		line string
		want domain.Event
	}{
		{"toggle 001", domain.Event{Type: domain.EventToggleSelection, RecordID: "001"}},
		{"select 001", domain.Event{Type: domain.EventToggleSelection, RecordID: "001"}},
		{"ALL", domain.Event{Type: domain.EventSelectAll}},
		{"clear", domain.Event{Type: domain.EventClearSelection}},
		{"edit 1 Name John  Smith", domain.Event{Type: domain.EventSetEdit, RecordID: "1", Field: "Name", Value: "John  Smith"}},
		{"edit 1 Amount 1500", domain.Event{Type: domain.EventSetEdit, RecordID: "1", Field: "Amount", Value: 1500}},
		{"edit 1 Active true", domain.Event{Type: domain.EventSetEdit, RecordID: "1", Field: "Active", Value: true}},
		{"edit 1 Amount", domain.Event{Type: domain.EventSetEdit, RecordID: "1", Field: "Amount", Value: ""}},
		{"discard", domain.Event{Type: domain.EventDiscardEdits}},
		{"discard 2", domain.Event{Type: domain.EventDiscardEdits, RecordID: "2"}},
		{"search john smith", domain.Event{Type: domain.EventSetSearch, Term: "john smith"}},
		{"search", domain.Event{Type: domain.EventSetSearch}},
		{"sort Amount", domain.Event{Type: domain.EventSortBy, Field: "Amount"}},
		{"sort Amount DESC", domain.Event{Type: domain.EventSetSort, Field: "Amount", Direction: domain.SortDescending}},
		{"unsort", domain.Event{Type: domain.EventClearSort}},
		{"start 1 Status", domain.Event{Type: domain.EventStartEdit, RecordID: "1", Field: "Status"}},
		{"blur", domain.Event{Type: domain.EventBlur}},
		{"commit", domain.Event{Type: domain.EventCommit}},
		{"cancel", domain.Event{Type: domain.EventCancel}},
		{"tab Closed", domain.Event{Type: domain.EventTab, Value: "Closed"}},
		{"backtab", domain.Event{Type: domain.EventTab, Backward: true}},
		{"focused", domain.Event{Type: domain.EventFocusSettled}},
		{"open 1 Account.Name", domain.Event{Type: domain.EventActivateLink, RecordID: "1", Field: "Account.Name"}},
		{"reset", domain.Event{Type: domain.EventReset}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, CommandEvent, cmd.Kind)
			assert.Equal(t, tt.want, cmd.Event)
		})
	}
}

func TestParseCommand_TabValue(t *testing.T) {
	cmd, err := ParseCommand("tab")
	require.NoError(t, err)
	assert.False(t, cmd.HasValue)

	cmd, err = ParseCommand("tab 10")
	require.NoError(t, err)
	assert.True(t, cmd.HasValue)
	assert.Equal(t, 10, cmd.Event.Value)
}

func TestParseCommand_Replace(t *testing.T) {
	cmd, err := ParseCommand(`replace [{Id: "1", Name: Acme}, {Id: "2", Name: Globex}]`)
	require.NoError(t, err)
	require.Len(t, cmd.Event.Records, 2)
	assert.Equal(t, "2", cmd.Event.Records[1].ID())
	assert.Equal(t, "Acme", cmd.Event.Records[0]["Name"])

	_, err = ParseCommand("replace [")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestParseCommand_Meta(t *testing.T) {
	for line, kind := range map[string]CommandKind{
		"view":    CommandView,
		"outputs": CommandOutputs,
		"help":    CommandHelp,
		"?":       CommandHelp,
		"quit":    CommandQuit,
		"exit":    CommandQuit,
	} {
		cmd, err := ParseCommand(line)
		require.NoError(t, err, line)
		assert.Equal(t, kind, cmd.Kind, line)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	for _, line := range []string{"toggle", "edit 1", "sort", "sort Name sideways", "start 1", "open 1"} {
		_, err := ParseCommand(line)
		assert.ErrorIs(t, err, ErrUsage, line)
	}

	_, err = ParseCommand("dance")
	assert.ErrorContains(t, err, "unknown command")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"Acme", "Acme"},
		{"42", 42},
		{"1.5", 1.5},
		{"false", false},
		{"null", nil},
		{"Re: hello", "Re: hello"},
		{"#1 seller", "#1 seller"},
		{"[broken", "[broken"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.raw), tt.raw)
	}
}
