package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codeforge/codeforge/internal/review"
)

// JSONWriter outputs the consensus findings as a JSON document with a
// top-level "findings" array.
type JSONWriter struct{}

type jsonPayload struct {
	Findings []review.Finding `json:"findings"`
}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	findings := report.Consensus.Findings
	if findings == nil {
		findings = []review.Finding{}
	}

	data, err := json.MarshalIndent(jsonPayload{Findings: findings}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
