package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *domain.View {
	return &domain.View{
		GridID:        "g1",
		SelectionMode: domain.SelectionMulti,
		Search:        "ac",
		TotalRecords:  3,
		Columns: []domain.ColumnView{
			{Field: "Name", Label: "Account Name", Sorted: domain.SortAscending},
			{Field: "Owner.Name", Label: "Owner | Team"},
		},
		Rows: []domain.RowView{
			{Number: 1, RecordID: "a1", Selected: true, Cells: []domain.CellView{
				{Field: "Name", Display: "Acme", Edited: true},
				{Field: "Owner.Name", Display: "Sam", LinkTargetID: "u1"},
			}},
			{Number: 2, RecordID: "a2", Cells: []domain.CellView{
				{Field: "Name", Display: "Acorn", Editing: true},
				{Field: "Owner.Name", Display: ""},
			}},
		},
		Outputs: domain.Outputs{
			SelectedCount: 1,
			EditedRecords: []domain.Record{{"Id": "a1"}},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleView())
	lines := strings.Split(strings.TrimSpace(md), "\n")

	assert.Equal(t, "Search: `ac`", lines[0])
	assert.Equal(t, `| # | [ ] | Account Name ▲ | Owner \| Team |`, lines[2])
	assert.Equal(t, "| --- | --- | --- | --- |", lines[3])
	assert.Equal(t, "| 1 | [x] | **Acme** | [Sam](u1) |", lines[4])
	assert.Equal(t, "| 2 | [ ] | `Acorn` |  |", lines[5])
	assert.Equal(t, "_2 of 3 rows, 1 selected, 1 edited_", lines[len(lines)-1])
}

func TestMarkdown_ViewOnlyAndMetadataError(t *testing.T) {
	v := &domain.View{
		SelectionMode: domain.SelectionViewOnly,
		MetadataError: "could not load field metadata for 'Lead': object not found",
		TotalRecords:  4,
	}
	md := Markdown(v)

	assert.True(t, strings.HasPrefix(md, "> **Error:** could not load"))
	assert.NotContains(t, md, "| #", "no table without columns")
	assert.Contains(t, md, "_0 of 4 rows, 0 selected_")
}

func TestMarkdown_AllSelectedHeader(t *testing.T) {
	v := sampleView()
	v.AllVisibleSelected = true
	assert.Contains(t, Markdown(v), "| # | [x] |")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(WithStyle("notty"), WithWidth(120))
	require.NoError(t, err)

	out, err := render(sampleView())
	require.NoError(t, err)
	assert.Contains(t, out, "Account Name")
	assert.Contains(t, out, "Acorn")
	assert.Contains(t, out, "1 selected")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, DefaultWidth, TerminalWidth(f))
	assert.Equal(t, DefaultWidth, TerminalWidth(nil))
	assert.False(t, IsTerminal(f))
}

func TestBannerAndStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
	assert.NotContains(t, buf.String(), "\x1b[", "plain output when not a terminal")

	assert.Equal(t, "OK grid is valid", Status(&buf, true, "grid is valid"))
	assert.Equal(t, "FAIL broken", Status(&buf, false, "broken"))
}
