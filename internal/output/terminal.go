package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codeforge/codeforge/internal/review"
)

var (
	severityStyles = map[review.Severity]lipgloss.Style{
		review.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		review.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		review.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		review.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		review.SeverityInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	fixStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	decisionStyle = lipgloss.NewStyle().Bold(true)
)

// TerminalWriter outputs a colored human-readable report.
type TerminalWriter struct{}

func (t *TerminalWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	result := report.Consensus

	ew.printf("%s\n", decisionStyle.Render("Decision: "+string(result.Decision)))
	ew.println(result.Summary)
	ew.println(strings.Repeat("─", 60))

	if len(result.Findings) == 0 {
		ew.println("\nNo findings to report.")
		return ew.err
	}

	for _, f := range result.Findings {
		style, ok := severityStyles[f.Severity]
		if !ok {
			style = fallbackStyle
		}
		ew.printf("\n%s\n", style.Render(f.Title+" (Severity: "+string(f.Severity)+")"))
		ew.printf("File: %s, Line: %d\n", f.File, f.Line)
		ew.printf("Description: %s\n", f.Description)
		if f.SuggestedFix != "" {
			ew.printf("%s\n", fixStyle.Render("Suggested Fix: "+f.SuggestedFix))
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (LLM: %dms)\n", report.Timing.TotalMs, report.Timing.LLMMs)

	return ew.err
}
