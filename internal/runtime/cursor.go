package runtime

import (
	"github.com/aretw0/flowgrid/pkg/domain"
)

// Cell edit cursor: idle (Cursor == nil) or editing(record, field).

func startEdit(s *domain.State, recordID, field string) *domain.State {
	if !hasRecord(s, recordID) {
		return s
	}
	col, ok := domain.FindColumn(s.Columns, field)
	if !ok || !col.IsEditable {
		return s
	}
	if s.Cursor.Is(recordID, field) && s.PendingFocus == nil {
		return s
	}
	next := s.Snapshot()
	next.Cursor = &domain.EditingCursor{RecordID: recordID, Field: field}
	next.PendingFocus = nil
	return next
}

// blur closes the editor unless a tab navigation is still moving focus, in
// which case the blur belongs to the cell that was just left.
func blur(s *domain.State) *domain.State {
	if s.Cursor == nil || s.PendingFocus != nil {
		return s
	}
	next := s.Snapshot()
	next.Cursor = nil
	return next
}

// stopEdit handles Enter and Escape. Values were already committed by the
// input-change events, so nothing is written or discarded here.
func stopEdit(s *domain.State) *domain.State {
	if s.Cursor == nil && s.PendingFocus == nil {
		return s
	}
	next := s.Snapshot()
	next.Cursor = nil
	next.PendingFocus = nil
	return next
}

// tab commits value on the cursor cell and moves to the same field of the
// neighbouring row in view order. Leaving the view closes the editor.
func tab(s *domain.State, value any, backward bool) (*domain.State, []domain.ActionRequest) {
	if s.Cursor == nil {
		return s, nil
	}
	cur := *s.Cursor

	committed := setEdit(s, cur.RecordID, cur.Field, value)
	visible := DeriveView(committed.Records, committed.Columns, committed.Edits, committed.Search, committed.Sort)

	target := -1
	for i, rec := range visible {
		if rec.ID() == cur.RecordID {
			target = i
			break
		}
	}
	if target >= 0 {
		if backward {
			target--
		} else {
			target++
		}
	}

	next := committed.Snapshot()
	if target < 0 || target >= len(visible) {
		next.Cursor = nil
		next.PendingFocus = nil
		return next, nil
	}

	to := domain.EditingCursor{RecordID: visible[target].ID(), Field: cur.Field}
	next.Cursor = &to
	pending := to
	next.PendingFocus = &pending
	return next, []domain.ActionRequest{{Type: domain.ActionFocusCell, Payload: to}}
}

// focusSettled acknowledges the deferred focus transfer. If the target cell is
// gone the host simply skipped it; either way the guard is released.
func focusSettled(s *domain.State) *domain.State {
	if s.PendingFocus == nil {
		return s
	}
	next := s.Snapshot()
	next.PendingFocus = nil
	if next.Cursor != nil && !hasRecord(next, next.Cursor.RecordID) {
		next.Cursor = nil
	}
	return next
}

func activateLink(s *domain.State, recordID, field string) []domain.ActionRequest {
	rec, ok := findRecord(s, recordID)
	if !ok {
		return nil
	}
	col, ok := domain.FindColumn(s.Columns, field)
	if !ok {
		return nil
	}
	target := linkTarget(rec, col)
	if target == "" {
		return nil
	}
	return []domain.ActionRequest{{
		Type:    domain.ActionNavigate,
		Payload: domain.NavigationRequest{RecordID: target},
	}}
}
