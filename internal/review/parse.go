package review

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// rawFinding is the JSON structure reviewers ask the LLM to return.
type rawFinding struct {
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Severity     string   `json:"severity"`
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	SuggestedFix string   `json:"suggested_fix"`
	Confidence   *float64 `json:"confidence"`
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// ParseFindings extracts findings from an LLM response. Markdown code fences
// are stripped, and a JSON array embedded in surrounding prose is tolerated.
// Entries that fail Finding validation are skipped rather than failing the
// whole response.
func ParseFindings(content, defaultCategory, reviewerName string) ([]Finding, error) {
	text := stripFences(strings.TrimSpace(content))

	var raw []rawFinding
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		match := jsonArrayRe.FindString(text)
		if match == "" {
			return nil, fmt.Errorf("response contains no JSON array: %w", err)
		}
		if err := json.Unmarshal([]byte(match), &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
	}

	findings := make([]Finding, 0, len(raw))
	for _, r := range raw {
		file := r.File
		if file == "" {
			file = "unknown"
		}
		severity := Severity(strings.ToLower(r.Severity))
		if r.Severity == "" {
			severity = SeverityInfo
		}
		category := r.Category
		if category == "" {
			category = defaultCategory
		}

		f, err := NewFinding(file, r.Line, severity, category, r.Title, r.Description)
		if err != nil {
			// Skip malformed entries; one bad finding should not sink the rest.
			continue
		}
		f.SuggestedFix = r.SuggestedFix
		f.Reviewer = reviewerName
		if r.Confidence != nil {
			f.Confidence = *r.Confidence
		}
		findings = append(findings, f)
	}

	return findings, nil
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
