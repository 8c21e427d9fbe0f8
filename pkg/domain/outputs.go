package domain

import "reflect"

// Output names as surfaced to the workflow host.
const (
	OutputSelectedRecords = "selected_records"
	OutputSelectedCount   = "selected_count"
	OutputEditedRecords   = "edited_records"
)

// OutputNames lists every output in a stable order.
var OutputNames = []string{OutputSelectedRecords, OutputSelectedCount, OutputEditedRecords}

// OutputsDiff carries only the outputs that changed between two evaluations.
type OutputsDiff struct {
	GridID   string `json:"grid_id"`
	Revision int    `json:"revision"`

	SelectedRecords *[]Record `json:"selected_records,omitempty"`
	SelectedCount   *int      `json:"selected_count,omitempty"`
	EditedRecords   *[]Record `json:"edited_records,omitempty"`
}

// Changed returns the names of the outputs present in the diff.
func (d *OutputsDiff) Changed() []string {
	if d == nil {
		return nil
	}
	var names []string
	if d.SelectedRecords != nil {
		names = append(names, OutputSelectedRecords)
	}
	if d.SelectedCount != nil {
		names = append(names, OutputSelectedCount)
	}
	if d.EditedRecords != nil {
		names = append(names, OutputEditedRecords)
	}
	return names
}

// Filter keeps only the watched outputs. An empty watch list keeps everything.
// It returns nil when nothing watched remains.
func (d *OutputsDiff) Filter(watch []string) *OutputsDiff {
	if d == nil || len(watch) == 0 {
		return d
	}
	keep := make(map[string]bool, len(watch))
	for _, w := range watch {
		keep[w] = true
	}
	out := &OutputsDiff{GridID: d.GridID, Revision: d.Revision}
	if keep[OutputSelectedRecords] {
		out.SelectedRecords = d.SelectedRecords
	}
	if keep[OutputSelectedCount] {
		out.SelectedCount = d.SelectedCount
	}
	if keep[OutputEditedRecords] {
		out.EditedRecords = d.EditedRecords
	}
	if len(out.Changed()) == 0 {
		return nil
	}
	return out
}

// DiffOutputs compares two output sets. A nil old value means initial load,
// in which case every output is reported. It returns nil when nothing changed.
func DiffOutputs(old *Outputs, new Outputs) *OutputsDiff {
	diff := &OutputsDiff{}

	if old == nil || !reflect.DeepEqual(old.SelectedRecords, new.SelectedRecords) {
		v := new.SelectedRecords
		diff.SelectedRecords = &v
	}
	if old == nil || old.SelectedCount != new.SelectedCount {
		v := new.SelectedCount
		diff.SelectedCount = &v
	}
	if old == nil || !reflect.DeepEqual(old.EditedRecords, new.EditedRecords) {
		v := new.EditedRecords
		diff.EditedRecords = &v
	}

	if len(diff.Changed()) == 0 {
		return nil
	}
	return diff
}
