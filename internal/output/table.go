package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/textutil"
)

// DefaultTextWidth caps the TEXT column of the table output.
const DefaultTextWidth = 80

// WriteTable renders items as an aligned plain-text table. Text cells are
// flattened to one line and cut to textWidth cells; textWidth <= 0 keeps
// them whole.
func WriteTable(w io.Writer, items []model.Annotation, sel FieldSelection, textWidth int) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(Headers(sel.Fields), "\t")); err != nil {
		return err
	}
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i, f := range sel.Fields {
			row[i] = textutil.Cell(row[i])
			if f.Key == "text" && textWidth > 0 {
				row[i] = textutil.TruncateByWidth(row[i], textWidth, "…")
			}
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Write dispatches on a normalized output name. doc is the value the json
// format encodes whole.
func Write(w io.Writer, format string, items []model.Annotation, sel FieldSelection, doc any) error {
	switch format {
	case "json":
		return WriteJSON(w, doc)
	case "ndjson":
		return WriteNDJSON(w, items)
	case "csv":
		return WriteCSV(w, items, sel)
	case "markdown":
		return WriteMarkdownTable(w, items, sel)
	default:
		return WriteTable(w, items, sel, DefaultTextWidth)
	}
}
