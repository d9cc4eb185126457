package output

import (
	"fmt"
	"io"

	"github.com/codeforge/codeforge/internal/review"
)

// MarkdownWriter outputs a report as GitHub-flavored markdown, suitable for
// posting as a PR review body.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	result := report.Consensus

	ew.println("## Codeforge Code Review\n")
	ew.printf("**Decision:** `%s`\n\n", result.Decision)
	ew.printf("%s\n\n", result.Summary)

	if len(result.Findings) > 0 {
		ew.println("| Severity | Count |")
		ew.println("|----------|-------|")
		counts := []struct {
			label string
			n     int
		}{
			{"Critical", result.CriticalCount},
			{"High", result.HighCount},
			{"Medium", result.MediumCount},
			{"Low", result.LowCount},
			{"Info", result.InfoCount},
		}
		for _, c := range counts {
			if c.n > 0 {
				ew.printf("| %s | %d |\n", c.label, c.n)
			}
		}
		ew.println("")
	}

	for _, f := range result.Findings {
		ew.println(FormatFinding(f))
	}

	return ew.err
}

// FormatFinding renders one finding as a markdown block.
func FormatFinding(f review.Finding) string {
	s := fmt.Sprintf("### %s\n", f.Title)
	s += fmt.Sprintf("- **File:** `%s`\n", f.File)
	s += fmt.Sprintf("- **Line:** `%d`\n", f.Line)
	s += fmt.Sprintf("- **Severity:** `%s`\n", f.Severity)
	s += fmt.Sprintf("- **Category:** `%s`\n", f.Category)
	s += fmt.Sprintf("- **Description:** %s\n", f.Description)
	if f.SuggestedFix != "" {
		s += fmt.Sprintf("- **Suggested Fix:** `%s`\n", f.SuggestedFix)
	}
	return s
}
