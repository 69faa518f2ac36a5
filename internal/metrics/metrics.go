package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of a single logshape run.
type Metrics struct {
	registry      *prometheus.Registry
	linesRead     prometheus.Counter
	rowsWritten   prometheus.Counter
	rowsMalformed prometheus.Counter
	failures      *prometheus.CounterVec
}

// New creates the run counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logshape_lines_read_total",
			Help: "Log lines loaded from the input file",
		}),
		rowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logshape_rows_written_total",
			Help: "CSV data rows appended, header excluded",
		}),
		rowsMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logshape_rows_malformed_total",
			Help: "Rows that did not shape into four fields",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logshape_io_failures_total",
				Help: "Read and write failures",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(m.linesRead, m.rowsWritten, m.rowsMalformed, m.failures)

	return m
}

func (m *Metrics) LinesRead(n int) { m.linesRead.Add(float64(n)) }
func (m *Metrics) RowsWritten(n int) { m.rowsWritten.Add(float64(n)) }
func (m *Metrics) RowsMalformed(n int) { m.rowsMalformed.Add(float64(n)) }

// Failure counts one failed I/O operation, "read" or "write".
func (m *Metrics) Failure(op string) { m.failures.WithLabelValues(op).Inc() }

// Registry exposes the registry the counters live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the counters in the text exposition format to path,
// for a node exporter textfile collector to pick up.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
