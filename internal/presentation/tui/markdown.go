package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
)

// Markdown renders a view as a Markdown document: an optional notice, the
// table and a footer with row and selection counts.
func Markdown(v *domain.View) string {
	var b strings.Builder

	if v.MetadataError != "" {
		fmt.Fprintf(&b, "> **Error:** %s\n\n", escape(v.MetadataError))
	}
	if v.Search != "" {
		fmt.Fprintf(&b, "Search: `%s`\n\n", strings.ReplaceAll(v.Search, "`", "'"))
	}

	if len(v.Columns) > 0 {
		selectable := v.SelectionMode != domain.SelectionViewOnly && v.SelectionMode != ""

		header := []string{"#"}
		if selectable {
			mark := " "
			if v.AllVisibleSelected && len(v.Rows) > 0 {
				mark = "x"
			}
			header = append(header, "["+mark+"]")
		}
		for _, c := range v.Columns {
			header = append(header, escape(c.Label)+sortMarker(c.Sorted))
		}
		writeRow(&b, header)

		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(&b, sep)

		for _, row := range v.Rows {
			cells := []string{fmt.Sprint(row.Number)}
			if selectable {
				mark := "[ ]"
				if row.Selected {
					mark = "[x]"
				}
				cells = append(cells, mark)
			}
			for _, c := range row.Cells {
				cells = append(cells, cellText(c))
			}
			writeRow(&b, cells)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_%d of %d rows, %d selected", len(v.Rows), v.TotalRecords, v.Outputs.SelectedCount)
	if n := len(v.Outputs.EditedRecords); n > 0 {
		fmt.Fprintf(&b, ", %d edited", n)
	}
	b.WriteString("_\n")
	return b.String()
}

func cellText(c domain.CellView) string {
	text := escape(c.Display)
	switch {
	case c.Editing:
		text = "`" + strings.ReplaceAll(c.Display, "`", "'") + "`"
	case c.LinkTargetID != "":
		text = "[" + text + "](" + c.LinkTargetID + ")"
	}
	if c.Edited {
		text = "**" + text + "**"
	}
	return text
}

func sortMarker(d domain.SortDirection) string {
	switch d {
	case domain.SortAscending:
		return " ▲"
	case domain.SortDescending:
		return " ▼"
	}
	return ""
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

var escaper = strings.NewReplacer("|", "\\|", "\n", " ", "\r", "")

func escape(s string) string {
	return escaper.Replace(s)
}
