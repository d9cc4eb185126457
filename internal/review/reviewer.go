package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeforge/codeforge/internal/providers"
)

// ReviewerKind is a closed enumeration of built-in reviewer roles.
type ReviewerKind string

const (
	KindSecurity    ReviewerKind = "security"
	KindCorrectness ReviewerKind = "correctness"
	KindPerformance ReviewerKind = "performance"
	KindStyle       ReviewerKind = "style"
)

// AllKinds lists every built-in reviewer role.
func AllKinds() []ReviewerKind {
	return []ReviewerKind{KindSecurity, KindCorrectness, KindPerformance, KindStyle}
}

// ParseKind resolves a reviewer kind from its string name.
func ParseKind(s string) (ReviewerKind, error) {
	kind := ReviewerKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range AllKinds() {
		if kind == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown reviewer kind: %q", s)
}

// displayName maps a kind to its human-readable reviewer name.
func displayName(kind ReviewerKind) string {
	switch kind {
	case KindSecurity:
		return "SecurityReviewer"
	case KindCorrectness:
		return "CorrectnessReviewer"
	case KindPerformance:
		return "PerformanceReviewer"
	case KindStyle:
		return "StyleReviewer"
	default:
		return string(kind)
	}
}

// Reviewer pairs a role prompt with an LLM client and produces one
// ReviewResult per review run.
type Reviewer struct {
	Name   string
	Kind   ReviewerKind
	client providers.Client
}

// NewReviewer creates a reviewer of the given kind backed by client.
func NewReviewer(kind ReviewerKind, client providers.Client) Reviewer {
	return Reviewer{Name: displayName(kind), Kind: kind, client: client}
}

// Review reviews a pull request and returns findings with a per-reviewer
// decision and summary. maxFindings caps the result when positive.
func (r Reviewer) Review(ctx context.Context, prctx PRContext, maxFindings int) (ReviewResult, error) {
	start := time.Now()

	resp, err := r.client.Complete(ctx, providers.Request{
		SystemPrompt: systemPrompt(r.Kind),
		UserPrompt:   BuildUserPrompt(prctx, r.Kind),
		MaxTokens:    4096,
		Temperature:  0.3,
	})
	if err != nil {
		return ReviewResult{}, fmt.Errorf("%s: %w", r.Name, err)
	}

	findings, err := ParseFindings(resp.Content, string(r.Kind), r.Name)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("%s: %w", r.Name, err)
	}
	if maxFindings > 0 && len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}

	return NewReviewResult(
		r.Name,
		string(r.Kind),
		decisionFor(findings),
		findings,
		summarize(r.Name, findings),
		time.Since(start),
	)
}

// decisionFor derives a reviewer-level decision from its findings: any
// critical or high finding requests changes, any finding at all comments,
// a clean run approves.
func decisionFor(findings []Finding) Decision {
	if len(findings) == 0 {
		return DecisionApprove
	}
	for _, f := range findings {
		if f.Severity == SeverityCritical || f.Severity == SeverityHigh {
			return DecisionRequestChanges
		}
	}
	return DecisionComment
}

// summarize builds the one-line per-reviewer summary.
func summarize(name string, findings []Finding) string {
	if len(findings) == 0 {
		return fmt.Sprintf("%s found no issues.", name)
	}
	counts := make(map[Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	parts := []string{fmt.Sprintf("%s found %d issue(s):", name, len(findings))}
	for _, sev := range Severities() {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return strings.Join(parts, " ")
}
