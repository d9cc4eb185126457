package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codeforge/codeforge/internal/consensus"
	"github.com/codeforge/codeforge/internal/review"
)

func sampleReport() *Report {
	return NewReport("1.0.0", "octo/widgets", 42, consensus.Result{
		Decision: review.DecisionRequestChanges,
		Findings: []review.Finding{
			{
				File:         "src/auth.py",
				Line:         42,
				Severity:     review.SeverityCritical,
				Category:     "security",
				Title:        "SQL injection",
				Description:  "User input reaches the query unsanitized.",
				SuggestedFix: "Use parameterized queries",
				Reviewer:     "SecurityReviewer",
				Confidence:   0.9,
			},
			{
				File:        "src/db.py",
				Line:        10,
				Severity:    review.SeverityLow,
				Category:    "style",
				Title:       "Inconsistent naming",
				Description: "Mixed snake_case and camelCase.",
				Reviewer:    "StyleReviewer",
				Confidence:  0.7,
			},
		},
		Summary:       "Consensus from 2 reviewer(s): SecurityReviewer, StyleReviewer\nTotal findings: 2\nSeverity breakdown: 1 critical, 1 low",
		ReviewersRun:  []string{"SecurityReviewer", "StyleReviewer"},
		TotalFindings: 2,
		CriticalCount: 1,
		LowCount:      1,
	})
}

func TestNewReport(t *testing.T) {
	report := sampleReport()
	if report.Tool != "codeforge" {
		t.Errorf("Tool = %q", report.Tool)
	}
	if report.RunID == "" {
		t.Error("RunID should be set")
	}
	if report.Repo != "octo/widgets" || report.PRNumber != 42 {
		t.Errorf("target = %s#%d", report.Repo, report.PRNumber)
	}
	other := sampleReport()
	if report.RunID == other.RunID {
		t.Error("RunID should be unique per report")
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"terminal", "json", "markdown"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q): %v", format, err)
		}
	}
	if _, err := GetWriter("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	// Keys must serialize in the canonical finding order.
	want := `{
    "findings": [
        {
            "file": "src/auth.py",
            "line": 42,
            "severity": "critical",
            "category": "security",
            "title": "SQL injection",
            "description": "User input reaches the query unsanitized.",
            "suggested_fix": "Use parameterized queries",
            "reviewer": "SecurityReviewer",
            "confidence": 0.9
        },
        {
            "file": "src/db.py",
            "line": 10,
            "severity": "low",
            "category": "style",
            "title": "Inconsistent naming",
            "description": "Mixed snake_case and camelCase.",
            "suggested_fix": "",
            "reviewer": "StyleReviewer",
            "confidence": 0.7
        }
    ]
}
`
	if out != want {
		t.Errorf("JSON output mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestJSONWriter_EmptyFindings(t *testing.T) {
	report := NewReport("1.0.0", "", 0, consensus.Result{
		Decision: review.DecisionApprove,
		Summary:  "No reviewers were run.",
	})

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"findings": []`) {
		t.Errorf("nil findings should serialize as empty array, got:\n%s", buf.String())
	}
}

func TestTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TerminalWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Decision: request_changes",
		"SQL injection (Severity: critical)",
		"File: src/auth.py, Line: 42",
		"Description: User input reaches the query unsanitized.",
		"Suggested Fix: Use parameterized queries",
		"Inconsistent naming (Severity: low)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalWriter_NoFindings(t *testing.T) {
	report := NewReport("1.0.0", "", 0, consensus.Result{
		Decision: review.DecisionApprove,
		Summary:  "Consensus from 1 reviewer(s): StyleReviewer\nTotal findings: 0",
	})

	var buf bytes.Buffer
	if err := (&TerminalWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "No findings to report.") {
		t.Errorf("expected empty-run message, got:\n%s", buf.String())
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Codeforge Code Review",
		"**Decision:** `request_changes`",
		"| Critical | 1 |",
		"| Low | 1 |",
		"### SQL injection",
		"- **File:** `src/auth.py`",
		"- **Line:** `42`",
		"- **Severity:** `critical`",
		"- **Category:** `security`",
		"- **Description:** User input reaches the query unsanitized.",
		"- **Suggested Fix:** `Use parameterized queries`",
		"### Inconsistent naming",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "| Medium |") {
		t.Error("zero-count severities should be omitted from the table")
	}
}

func TestFormatFinding_OmitsEmptyFix(t *testing.T) {
	block := FormatFinding(review.Finding{
		File: "a.go", Line: 1, Severity: review.SeverityInfo,
		Category: "style", Title: "Nit", Description: "Minor.",
	})
	if strings.Contains(block, "Suggested Fix") {
		t.Errorf("empty fix should be omitted:\n%s", block)
	}
}

func TestWriteReport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReport(sampleReport(), "json", path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), `"findings"`) {
		t.Errorf("file content missing findings:\n%s", data)
	}
}
