package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/analysis"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// ReportWriter is the interface for writing position reports.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteReport writes a position and, if res is not nil, its perft result.
	WriteReport(g *engine.GameState, res *analysis.Result) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewReportWriter returns the writer selected by cfg.Output. JSON output
// is batched when batch is set and written as one document on Close.
func NewReportWriter(cfg *config.Config, batch bool) ReportWriter {
	if cfg.Output.JSONFormat {
		if batch {
			return NewJSONWriter(cfg.OutputFile, cfg)
		}
		return NewJSONWriterSingle(cfg.OutputFile, cfg)
	}
	return NewTextWriter(cfg.OutputFile, cfg)
}

// TextWriter writes reports as plain text.
type TextWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteReport writes a report, separated from the previous one by a blank line.
func (tw *TextWriter) WriteReport(g *engine.GameState, res *analysis.Result) error {
	if tw.written > 0 {
		fmt.Fprintln(tw.w)
	}
	tw.written++

	if tw.cfg.Output.ShowBoard {
		RenderBoard(tw.w, g.Board(), tw.cfg.Output.Colour)
	}
	WriteState(tw.w, g)
	if res != nil {
		WritePerft(tw.w, res, tw.cfg.Analysis.Divide)
	}
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes reports in JSON format.
// It buffers reports and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.Config
	reports []*JSONReport
	single  bool // If true, write each report immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches reports and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:       w,
		cfg:     cfg,
		reports: make([]*JSONReport, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each report immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteReport buffers a report for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteReport(g *engine.GameState, res *analysis.Result) error {
	report := &JSONReport{State: StateToJSON(g)}
	if res != nil {
		report.Perft = PerftToJSON(res, jw.cfg.Analysis.Divide)
	}

	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	jw.reports = append(jw.reports, report)
	return nil
}

// Flush writes all buffered reports as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Reports: jw.reports})

	// Clear buffer after writing
	jw.reports = jw.reports[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
