package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	records := []Record{{"Id": "1"}, {"Id": "2"}}

	tests := []struct {
		name     string
		old      *State
		new      *State
		wantDiff *StateDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &State{
				GridID:    "grid-1",
				Records:   records,
				Selection: NewSelection("1"),
			},
			wantDiff: &StateDiff{
				GridID:    "grid-1",
				Selection: &[]string{"1"},
				Search:    &[]string{""}[0],
				Sort:      &SortState{},
			},
		},
		{
			name: "No Changes",
			old: &State{
				GridID:    "grid-1",
				Records:   records,
				Selection: NewSelection("1"),
				Search:    "acme",
			},
			new: &State{
				GridID:    "grid-1",
				Records:   records,
				Selection: NewSelection("1"),
				Search:    "acme",
			},
			wantDiff: nil,
		},
		{
			name: "Selection And Search Changed",
			old: &State{
				GridID:    "grid-1",
				Records:   records,
				Selection: NewSelection("1"),
			},
			new: &State{
				GridID:    "grid-1",
				Records:   records,
				Selection: NewSelection("1", "2"),
				Search:    "smith",
			},
			wantDiff: &StateDiff{
				GridID:    "grid-1",
				Selection: &[]string{"1", "2"},
				Search:    &[]string{"smith"}[0],
			},
		},
		{
			name: "Edit Added And Removed",
			old: &State{
				Records: records,
				Edits:   EditLedger{}.Set("1", "Status", "Closed"),
			},
			new: &State{
				Records: records,
				Edits:   EditLedger{}.Set("2", "Amount", 10),
			},
			wantDiff: &StateDiff{
				Edits: map[string]map[string]any{
					"1": nil,
					"2": {"Amount": 10},
				},
			},
		},
		{
			name: "Cursor Cleared",
			old: &State{
				Records: records,
				Cursor:  &EditingCursor{RecordID: "1", Field: "Status"},
			},
			new: &State{
				Records: records,
			},
			wantDiff: &StateDiff{CursorCleared: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %+v", tt.wantDiff)
			}

			if got.GridID != tt.wantDiff.GridID {
				t.Errorf("Diff().GridID = %v, want %v", got.GridID, tt.wantDiff.GridID)
			}
			if !reflect.DeepEqual(got.Selection, tt.wantDiff.Selection) {
				t.Errorf("Diff().Selection = %v, want %v", got.Selection, tt.wantDiff.Selection)
			}
			if !reflect.DeepEqual(got.Edits, tt.wantDiff.Edits) {
				t.Errorf("Diff().Edits = %v, want %v", got.Edits, tt.wantDiff.Edits)
			}
			if !equalPtr(got.Search, tt.wantDiff.Search) {
				t.Errorf("Diff().Search = %v, want %v", got.Search, tt.wantDiff.Search)
			}
			if !equalPtr(got.Sort, tt.wantDiff.Sort) {
				t.Errorf("Diff().Sort = %v, want %v", got.Sort, tt.wantDiff.Sort)
			}
			if got.CursorCleared != tt.wantDiff.CursorCleared {
				t.Errorf("Diff().CursorCleared = %v, want %v", got.CursorCleared, tt.wantDiff.CursorCleared)
			}
		})
	}
}

func TestDiff_RecordsReplaced(t *testing.T) {
	old := &State{Records: []Record{{"Id": "1"}}}
	new := &State{Records: []Record{{"Id": "1"}}}

	diff := Diff(old, new)
	if diff == nil || !diff.Records {
		t.Fatalf("expected records flag for a replaced collection, got %+v", diff)
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Unchanged Edits Omitted", func(t *testing.T) {
		s1 := &State{Search: "a", Edits: EditLedger{}.Set("1", "Name", "x")}
		s2 := &State{Search: "b", Edits: s1.Edits}
		diff := Diff(s1, s2)

		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"edits"`) {
			t.Errorf("JSON should not contain 'edits' when unchanged, got: %s", string(bytes))
		}
	})

	t.Run("Removed Edit As Null", func(t *testing.T) {
		s1 := &State{Edits: EditLedger{}.Set("1", "Name", "x")}
		s2 := &State{}
		diff := Diff(s1, s2)

		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if !strings.Contains(string(bytes), `"1":null`) {
			t.Errorf("JSON should contain '1':null for a dropped record, got: %s", string(bytes))
		}
	})
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
