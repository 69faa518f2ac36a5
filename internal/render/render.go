package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mgutz/ansi"

	"github.com/rugwirobaker/logshape/internal/shape"
)

const (
	finishedMessage = "Processing finished."
	warningPrefix   = "warning:"
)

func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteTable(w io.Writer, title string, rows [][]string, cols ...string) {
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(w, "\033[1m%s\033[0m\n", title)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	for _, column := range cols {
		fmt.Fprintf(tw, "%s\t", strings.ToUpper(column))
	}

	fmt.Fprintln(tw)

	for _, row := range rows {
		for _, value := range row {
			fmt.Fprintf(tw, "%s\t", value)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)
}

// Warnings prints one line per malformed row, in row order.
func Warnings(w io.Writer, warnings []shape.Warning, color bool) {
	prefix := warningPrefix
	if color {
		prefix = ansi.Color(prefix, "yellow+b")
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "%s %s\n", prefix, warning)
	}
}

func Finished(w io.Writer) {
	fmt.Fprintln(w, finishedMessage)
}

func ReadFailure(w io.Writer, path string, err error) {
	fmt.Fprintln(w, err)
	fmt.Fprintf(w, "could not open file (%s). Please check the file.\n", path)
}

func WriteFailure(w io.Writer, path string, err error) {
	fmt.Fprintln(w, err)
	fmt.Fprintf(w, "could not write file (%s).\n", path)
}

// PreviewRow pairs a raw log line with its shaped form.
type PreviewRow struct {
	Row    int    `json:"row"`
	Raw    string `json:"raw"`
	Shaped string `json:"shaped"`
	Fields int    `json:"fields"`
	OK     bool   `json:"ok"`
}

// Preview lists raw and shaped lines side by side, marking malformed rows.
func Preview(w io.Writer, rows []PreviewRow) {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := "ok"
		if !r.OK {
			status = "malformed"
		}
		table = append(table, []string{fmt.Sprint(r.Row), fmt.Sprint(r.Fields), status, r.Shaped})
	}
	WriteTable(w, "", table, "row", "fields", "status", "shaped")
}
