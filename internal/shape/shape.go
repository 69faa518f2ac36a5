// Package shape turns whitespace-aligned log lines into comma-separated
// rows of Columns fields: timestamp, message type, path and message.
package shape

import (
	"fmt"
	"regexp"
	"strings"
)

// Columns is the number of fields a well-formed row has.
const Columns = 4

// Header names the Columns fields in order.
const Header = "timestamp,messageType,path,message"

var spaceRun = regexp.MustCompile(`  +`)

// Warning flags a row that did not end up with Columns fields.
type Warning struct {
	Row int // 1-based, blank lines included
}

func (w Warning) String() string {
	return fmt.Sprintf("a row near line %d has data that could not be comma-separated properly", w.Row)
}

// Result is the shaped form of a whole log.
type Result struct {
	Lines    []string
	Warnings []Warning
}

// Shape reshapes every line. Malformed rows are kept as-is and reported in
// Warnings in row order.
func Shape(lines []string) Result {
	res := Result{Lines: make([]string, 0, len(lines))}
	for i, raw := range lines {
		shaped := Line(raw)
		if FieldCount(shaped) != Columns {
			res.Warnings = append(res.Warnings, Warning{Row: i + 1})
		}
		res.Lines = append(res.Lines, shaped)
	}
	return res
}

// Line reshapes one log line. Runs of two or more spaces become commas,
// the first " [" becomes ",[" and the first comma, which falls inside the
// timestamp, goes back to a space.
func Line(s string) string {
	s = spaceRun.ReplaceAllString(s, ",")
	s = strings.Replace(s, " [", ",[", 1)
	return strings.Replace(s, ",", " ", 1)
}

// FieldCount counts the comma-separated fields of s, ignoring trailing
// empty fields. An empty string is a single field.
func FieldCount(s string) int {
	if s == "" {
		return 1
	}
	fields := strings.Split(s, ",")
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return n
}
