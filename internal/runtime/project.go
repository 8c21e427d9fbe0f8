package runtime

import (
	"github.com/aretw0/flowgrid/pkg/domain"
)

// project builds the view from scratch; nothing is cached between calls.
func project(s *domain.State, f *Formatter) *domain.View {
	visible := DeriveView(s.Records, s.Columns, s.Edits, s.Search, s.Sort)

	view := &domain.View{
		GridID:             s.GridID,
		Revision:           s.Revision,
		Columns:            make([]domain.ColumnView, 0, len(s.Columns)),
		Rows:               make([]domain.RowView, 0, len(visible)),
		TotalRecords:       len(s.Records),
		Search:             s.Search,
		SearchEnabled:      s.Config.SearchEnabled,
		Sort:               s.Sort,
		SelectionMode:      s.Config.SelectionMode,
		AllVisibleSelected: allSelected(s.Selection, visible),
		Outputs:            outputs(s),
		MetadataError:      s.MetadataError,
	}

	for _, col := range s.Columns {
		cv := domain.ColumnView{
			Field:    col.FieldAPIName,
			Label:    col.Label,
			DataType: col.DataType,
			Editable: col.IsEditable,
		}
		if s.Sort.Field == col.FieldAPIName {
			cv.Sorted = direction(s.Sort.Direction)
		}
		view.Columns = append(view.Columns, cv)
	}

	for i, rec := range visible {
		id := rec.ID()
		row := domain.RowView{
			Number:   i + 1,
			RecordID: id,
			Selected: s.Selection.Has(id),
			Edited:   s.Edits.Has(id),
			Cells:    make([]domain.CellView, 0, len(s.Columns)),
		}
		for _, col := range s.Columns {
			value := effectiveValue(rec, col.FieldAPIName, s.Edits)
			_, edited := s.Edits.Get(id, col.FieldAPIName)
			editing := s.Cursor.Is(id, col.FieldAPIName)
			if editing {
				view.Editing = &domain.EditingCursor{RecordID: id, Field: col.FieldAPIName}
			}
			row.Cells = append(row.Cells, domain.CellView{
				Field:        col.FieldAPIName,
				Value:        value,
				Display:      f.Format(value, col),
				Editable:     col.IsEditable,
				Editing:      editing,
				Edited:       edited,
				LinkTargetID: linkTarget(rec, col),
				Input:        col.DataType.InputKind(),
			})
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func outputs(s *domain.State) domain.Outputs {
	selected := selectedRecords(s)
	return domain.Outputs{
		SelectedRecords: selected,
		SelectedCount:   len(selected),
		EditedRecords:   editedRecords(s),
	}
}
