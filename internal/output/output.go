package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/codeforge/codeforge/internal/consensus"
)

// Report is the full envelope of one review run: tool identity, target,
// consensus outcome, and timing.
type Report struct {
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	RunID     string           `json:"run_id"`
	Timestamp time.Time        `json:"timestamp"`
	Repo      string           `json:"repo,omitempty"`
	PRNumber  int              `json:"pr_number,omitempty"`
	Consensus consensus.Result `json:"consensus"`
	Timing    Timing           `json:"timing"`
}

// Timing captures wall-clock durations in milliseconds.
type Timing struct {
	LLMMs   int64 `json:"llm_ms"`
	TotalMs int64 `json:"total_ms"`
}

// NewReport builds a report envelope around a consensus result.
func NewReport(version, repo string, prNumber int, result consensus.Result) *Report {
	return &Report{
		Tool:      "codeforge",
		Version:   version,
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Repo:      repo,
		PRNumber:  prNumber,
		Consensus: result,
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "terminal":
		return &TerminalWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
