package runtime

import (
	"reflect"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// setEdit records a pending cell value. A value equal to the original removes
// the pending entry, and a record without pending fields leaves the ledger.
func setEdit(s *domain.State, recordID, field string, value any) *domain.State {
	rec, ok := findRecord(s, recordID)
	if !ok {
		return s
	}
	col, ok := domain.FindColumn(s.Columns, field)
	if !ok || !col.IsEditable {
		return s
	}

	current, pending := s.Edits.Get(recordID, field)

	var edits domain.EditLedger
	if ValuesEqual(value, Resolve(rec, field)) {
		if !pending {
			return s
		}
		edits = s.Edits.Unset(recordID, field)
	} else {
		if pending && reflect.DeepEqual(current, value) {
			return s
		}
		edits = s.Edits.Set(recordID, field, value)
	}

	next := s.Snapshot()
	next.Edits = edits
	return next
}

// discardEdits drops the pending fields of one record, or of every record when
// recordID is empty.
func discardEdits(s *domain.State, recordID string) *domain.State {
	if recordID == "" {
		if s.Edits.Len() == 0 {
			return s
		}
		next := s.Snapshot()
		next.Edits = domain.EditLedger{}
		return next
	}
	if !s.Edits.Has(recordID) {
		return s
	}
	next := s.Snapshot()
	next.Edits = s.Edits.Drop(recordID)
	return next
}

// editedRecords merges pending fields over their original records, in the
// order records were first edited. Outside view-only mode only selected
// records are reported. Entries whose record is gone are skipped.
func editedRecords(s *domain.State) []domain.Record {
	out := make([]domain.Record, 0, s.Edits.Len())
	if s.Edits.Len() == 0 {
		return out
	}

	gate := s.Config.SelectionMode != domain.SelectionViewOnly
	index := domain.IndexRecords(s.Records)
	for _, id := range s.Edits.IDs() {
		original, ok := index[id]
		if !ok {
			continue
		}
		if gate && !s.Selection.Has(id) {
			continue
		}
		merged := original.Clone()
		for field, v := range s.Edits.Fields(id) {
			merged[field] = v
		}
		out = append(out, merged)
	}
	return out
}
