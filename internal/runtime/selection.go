package runtime

import (
	"github.com/aretw0/flowgrid/pkg/domain"
)

func toggleSelection(s *domain.State, recordID string) *domain.State {
	if !hasRecord(s, recordID) {
		return s
	}

	var sel domain.Selection
	switch s.Config.SelectionMode {
	case domain.SelectionSingle:
		if s.Selection.Has(recordID) && s.Selection.Len() == 1 {
			sel = domain.Selection{}
		} else {
			sel = domain.NewSelection(recordID)
		}
	case domain.SelectionMulti:
		if s.Selection.Has(recordID) {
			sel = s.Selection.Without(recordID)
		} else {
			sel = s.Selection.With(recordID)
		}
	default:
		return s
	}

	next := s.Snapshot()
	next.Selection = sel
	return next
}

// selectAll toggles the whole visible set: when every visible row is already
// selected the selection is cleared, otherwise all visible rows are added.
func selectAll(s *domain.State, visible []domain.Record) *domain.State {
	if s.Config.SelectionMode != domain.SelectionMulti || len(visible) == 0 {
		return s
	}

	next := s.Snapshot()
	if allSelected(s.Selection, visible) {
		next.Selection = domain.Selection{}
		return next
	}

	ids := make([]string, 0, len(visible))
	for _, rec := range visible {
		ids = append(ids, rec.ID())
	}
	next.Selection = s.Selection.With(ids...)
	return next
}

func clearSelection(s *domain.State) *domain.State {
	if s.Selection.Len() == 0 {
		return s
	}
	next := s.Snapshot()
	next.Selection = domain.Selection{}
	return next
}

func allSelected(sel domain.Selection, visible []domain.Record) bool {
	if len(visible) == 0 {
		return false
	}
	for _, rec := range visible {
		if !sel.Has(rec.ID()) {
			return false
		}
	}
	return true
}

// selectedRecords returns the raw records whose identifier is selected, in
// raw collection order. Identifiers without a record are skipped.
func selectedRecords(s *domain.State) []domain.Record {
	out := make([]domain.Record, 0, s.Selection.Len())
	if s.Selection.Len() == 0 {
		return out
	}
	for _, rec := range s.Records {
		if s.Selection.Has(rec.ID()) {
			out = append(out, rec)
		}
	}
	return out
}

func hasRecord(s *domain.State, recordID string) bool {
	_, ok := findRecord(s, recordID)
	return ok
}

func findRecord(s *domain.State, recordID string) (domain.Record, bool) {
	if recordID == "" {
		return nil, false
	}
	for _, rec := range s.Records {
		if rec.ID() == recordID {
			return rec, true
		}
	}
	return nil, false
}
