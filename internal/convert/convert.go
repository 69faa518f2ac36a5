// Package convert runs one log file through the reader, the shaper and the
// CSV writer, reporting problems to the console as it goes.
package convert

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rugwirobaker/logshape/internal/config"
	"github.com/rugwirobaker/logshape/internal/csvfile"
	"github.com/rugwirobaker/logshape/internal/iostreams"
	"github.com/rugwirobaker/logshape/internal/logfile"
	"github.com/rugwirobaker/logshape/internal/metrics"
	"github.com/rugwirobaker/logshape/internal/pointer"
	"github.com/rugwirobaker/logshape/internal/render"
	"github.com/rugwirobaker/logshape/internal/shape"
)

// Report describes what a run did.
type Report struct {
	Input       string
	Output      string
	LinesRead   int
	RowsWritten int
	Warnings    []shape.Warning
	ReadErr     error
	WriteErr    error
}

// Err joins the read and write failures of the run, if any.
func (r *Report) Err() error {
	return errors.Join(r.ReadErr, r.WriteErr)
}

// File converts the log at input and appends it to the CSV file cfg names.
// A read failure is reported and the run goes on with no lines, so the
// header is still appended. Read and write failures land in the Report.
func File(ctx context.Context, cfg *config.Config, input string, m *metrics.Metrics) *Report {
	io := iostreams.FromContext(ctx)
	report := &Report{Input: input}

	lines, err := logfile.Read(input)
	if err != nil {
		slog.Debug("log file unreadable", "path", input, "error", err)
		render.ReadFailure(io.ErrOut, input, err)
		m.Failure("read")
		report.ReadErr = err
		lines = nil
	}
	report.LinesRead = len(lines)
	m.LinesRead(len(lines))

	res := shape.Shape(lines)
	report.Warnings = res.Warnings
	render.Warnings(io.Out, res.Warnings, io.IsStdoutTTY())
	m.RowsMalformed(len(res.Warnings))

	if err := appendRows(cfg.Output, res.Lines, report, m); err != nil {
		var werr *csvfile.WriteError
		path := report.Output
		if errors.As(err, &werr) {
			path = werr.Path
		}
		slog.Debug("csv file not written", "path", path, "error", err)
		render.WriteFailure(io.ErrOut, path, err)
		m.Failure("write")
		report.WriteErr = err
	}

	if path := pointer.StringValue(cfg.MetricsFile); path != "" {
		if err := m.WriteTextfile(path); err != nil {
			slog.Warn("metrics not exported", "path", path, "error", err)
		}
	}

	slog.Debug("log converted",
		"input", input,
		"output", report.Output,
		"lines", report.LinesRead,
		"rows", report.RowsWritten,
		"malformed", len(report.Warnings),
	)
	return report
}

func appendRows(out config.Output, lines []string, report *Report, m *metrics.Metrics) error {
	w, err := csvfile.New(out.Dir, out.Name, out.Header)
	if err != nil {
		return err
	}
	report.Output = w.Path()

	n, err := w.Append(lines)
	report.RowsWritten = n
	m.RowsWritten(n)
	return err
}

// Preview shapes the log at input without writing anything.
func Preview(input string) ([]render.PreviewRow, error) {
	lines, err := logfile.Read(input)
	if err != nil {
		return nil, err
	}

	rows := make([]render.PreviewRow, 0, len(lines))
	for i, raw := range lines {
		shaped := shape.Line(raw)
		fields := shape.FieldCount(shaped)
		rows = append(rows, render.PreviewRow{
			Row:    i + 1,
			Raw:    raw,
			Shaped: shaped,
			Fields: fields,
			OK:     fields == shape.Columns,
		})
	}
	return rows, nil
}
