package domain

// Outputs are the results surfaced to the workflow host.
type Outputs struct {
	SelectedRecords []Record `json:"selected_records"`
	SelectedCount   int      `json:"selected_count"`
	EditedRecords   []Record `json:"edited_records"`
}

// ColumnView is a header cell.
type ColumnView struct {
	Field    string        `json:"field"`
	Label    string        `json:"label"`
	DataType DataType      `json:"data_type"`
	Editable bool          `json:"editable"`
	Sorted   SortDirection `json:"sorted,omitempty"`
}

// CellView is the renderable model of one cell.
type CellView struct {
	Field string `json:"field"`

	// Value is the effective value: the pending edit if any, else the raw value.
	Value   any    `json:"value"`
	Display string `json:"display"`

	// Editable is the column-level flag, independent of edit state.
	Editable bool `json:"editable"`
	Editing  bool `json:"editing,omitempty"`
	Edited   bool `json:"edited,omitempty"`

	// LinkTargetID is set only for relationship columns whose identifier
	// sub-field resolves to a value on this record.
	LinkTargetID string `json:"link_target_id,omitempty"`

	Input InputKind `json:"input"`
}

// RowView is one visible row, numbered from 1 in view order.
type RowView struct {
	Number   int        `json:"number"`
	RecordID string     `json:"record_id"`
	Selected bool       `json:"selected"`
	Edited   bool       `json:"edited,omitempty"`
	Cells    []CellView `json:"cells"`
}

// View is the stateless projection of a State.
type View struct {
	GridID             string         `json:"grid_id"`
	Revision           int            `json:"revision"`
	Columns            []ColumnView   `json:"columns"`
	Rows               []RowView      `json:"rows"`
	TotalRecords       int            `json:"total_records"`
	Search             string         `json:"search,omitempty"`
	SearchEnabled      bool           `json:"search_enabled"`
	Sort               SortState      `json:"sort"`
	SelectionMode      SelectionMode  `json:"selection_mode"`
	AllVisibleSelected bool           `json:"all_visible_selected"`
	Editing            *EditingCursor `json:"editing,omitempty"`
	Outputs            Outputs        `json:"outputs"`
	MetadataError      string         `json:"metadata_error,omitempty"`
}

// Row returns the row for a record identifier, if visible.
func (v *View) Row(recordID string) (RowView, bool) {
	for _, r := range v.Rows {
		if r.RecordID == recordID {
			return r, true
		}
	}
	return RowView{}, false
}

// Cell returns a cell of a visible row.
func (r RowView) Cell(field string) (CellView, bool) {
	for _, c := range r.Cells {
		if c.Field == field {
			return c, true
		}
	}
	return CellView{}, false
}
