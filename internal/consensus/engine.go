package consensus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codeforge/codeforge/internal/review"
)

// Result is the aggregated outcome of a single consensus run.
type Result struct {
	Decision      review.Decision
	Findings      []review.Finding
	Summary       string
	ReviewersRun  []string
	TotalFindings int
	CriticalCount int
	HighCount     int
	MediumCount   int
	LowCount      int
	InfoCount     int
}

// Aggregate merges the outputs of all reviewers into one consensus result.
//
// Findings are flattened in results order, deduplicated by exact location,
// conflict-resolved across nearby lines, and sorted by severity, file, line.
// The verdict is computed over the reviewer-level decisions of the original
// results, not over the resolved findings. An empty input is a defined
// terminal case, not an error.
func Aggregate(results []review.ReviewResult) Result {
	if len(results) == 0 {
		return Result{
			Decision:     review.DecisionApprove,
			Findings:     []review.Finding{},
			Summary:      "No reviewers were run.",
			ReviewersRun: []string{},
		}
	}

	var all []review.Finding
	for _, r := range results {
		all = append(all, r.Findings...)
	}

	resolved := ResolveConflicts(Deduplicate(all))

	sort.SliceStable(resolved, func(i, j int) bool {
		ri, rj := review.SeverityRank(resolved[i].Severity), review.SeverityRank(resolved[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if resolved[i].File != resolved[j].File {
			return resolved[i].File < resolved[j].File
		}
		return resolved[i].Line < resolved[j].Line
	})

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.ReviewerName
	}
	counts := countBySeverity(resolved)

	return Result{
		Decision:      ComputeVerdict(results),
		Findings:      resolved,
		Summary:       buildSummary(names, resolved, counts),
		ReviewersRun:  names,
		TotalFindings: len(resolved),
		CriticalCount: counts[review.SeverityCritical],
		HighCount:     counts[review.SeverityHigh],
		MediumCount:   counts[review.SeverityMedium],
		LowCount:      counts[review.SeverityLow],
		InfoCount:     counts[review.SeverityInfo],
	}
}

// ComputeVerdict determines the overall decision from reviewer-level
// decisions. Any request_changes wins; unanimous approve approves; anything
// else is a comment. Order of results does not matter.
func ComputeVerdict(results []review.ReviewResult) review.Decision {
	if len(results) == 0 {
		return review.DecisionApprove
	}
	allApprove := true
	for _, r := range results {
		if r.Decision == review.DecisionRequestChanges {
			return review.DecisionRequestChanges
		}
		if r.Decision != review.DecisionApprove {
			allApprove = false
		}
	}
	if allApprove {
		return review.DecisionApprove
	}
	return review.DecisionComment
}

func countBySeverity(findings []review.Finding) map[review.Severity]int {
	counts := make(map[review.Severity]int, 5)
	for _, f := range findings {
		sev := review.Severity(strings.ToLower(string(f.Severity)))
		if review.ValidSeverity(sev) {
			counts[sev]++
		}
	}
	return counts
}

func buildSummary(names []string, findings []review.Finding, counts map[review.Severity]int) string {
	lines := []string{
		fmt.Sprintf("Consensus from %d reviewer(s): %s", len(names), strings.Join(names, ", ")),
		fmt.Sprintf("Total findings: %d", len(findings)),
	}
	if len(findings) > 0 {
		var parts []string
		for _, sev := range review.Severities() {
			if n := counts[sev]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, sev))
			}
		}
		if len(parts) > 0 {
			lines = append(lines, "Severity breakdown: "+strings.Join(parts, ", "))
		}
	}
	return strings.Join(lines, "\n")
}
