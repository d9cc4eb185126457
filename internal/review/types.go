package review

import (
	"fmt"
	"strings"
	"time"
)

// Severity represents the urgency level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// severityRankUnknown is the rank assigned to severities outside the
// five-value enumeration. It sorts after info.
const severityRankUnknown = 5

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return severityRankUnknown
	}
}

// ValidSeverity reports whether s is one of the five known severities.
func ValidSeverity(s Severity) bool {
	return SeverityRank(s) != severityRankUnknown
}

// Severities lists the known severities from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Decision is a reviewer-level or consensus-level review outcome.
type Decision string

const (
	DecisionApprove        Decision = "approve"
	DecisionRequestChanges Decision = "request_changes"
	DecisionComment        Decision = "comment"
)

// ValidDecision reports whether d is one of the three known decisions.
func ValidDecision(d Decision) bool {
	switch d {
	case DecisionApprove, DecisionRequestChanges, DecisionComment:
		return true
	}
	return false
}

// Finding is a single code review finding. Findings are value objects:
// once constructed they are never mutated, only replaced by merged copies.
type Finding struct {
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Severity     Severity `json:"severity"`
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	SuggestedFix string   `json:"suggested_fix"`
	Reviewer     string   `json:"reviewer"`
	Confidence   float64  `json:"confidence"`
}

// NewFinding constructs a validated Finding. Confidence defaults to 1.0.
func NewFinding(file string, line int, severity Severity, category, title, description string) (Finding, error) {
	if file == "" {
		return Finding{}, fmt.Errorf("finding file must not be empty")
	}
	if line < 0 {
		return Finding{}, fmt.Errorf("finding line must be non-negative, got %d", line)
	}
	if !ValidSeverity(severity) {
		return Finding{}, fmt.Errorf("finding severity must be one of critical, high, medium, low, info; got %q", severity)
	}
	return Finding{
		File:        file,
		Line:        line,
		Severity:    severity,
		Category:    category,
		Title:       title,
		Description: description,
		Confidence:  1.0,
	}, nil
}

// ReviewResult is one reviewer's full output for a single run.
type ReviewResult struct {
	ReviewerName  string
	ReviewerType  string
	Decision      Decision
	Findings      []Finding
	Summary       string
	ExecutionTime time.Duration
}

// NewReviewResult constructs a validated ReviewResult.
func NewReviewResult(name, reviewerType string, decision Decision, findings []Finding, summary string, elapsed time.Duration) (ReviewResult, error) {
	if !ValidDecision(decision) {
		return ReviewResult{}, fmt.Errorf("decision must be one of approve, request_changes, comment; got %q", decision)
	}
	return ReviewResult{
		ReviewerName:  name,
		ReviewerType:  reviewerType,
		Decision:      decision,
		Findings:      findings,
		Summary:       summary,
		ExecutionTime: elapsed,
	}, nil
}

// PRContext carries everything a reviewer needs about the change under review.
type PRContext struct {
	Repo         string
	Number       int
	Title        string
	Description  string
	Diff         string
	FilesChanged []string
	BaseBranch   string
	HeadBranch   string
}

// NewPRContext constructs a validated PRContext. Repo must be "owner/repo".
func NewPRContext(repo string, number int) (PRContext, error) {
	if !strings.Contains(repo, "/") {
		return PRContext{}, fmt.Errorf("repo must be in owner/repo format, got %q", repo)
	}
	return PRContext{Repo: repo, Number: number}, nil
}
