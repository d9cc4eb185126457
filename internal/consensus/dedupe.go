package consensus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codeforge/codeforge/internal/review"
)

type locationKey struct {
	file string
	line int
}

// Deduplicate merges findings that refer to the same file and line.
//
// Output order follows the first occurrence of each distinct location in the
// input; the final severity sort happens later in Aggregate. Groups of one
// pass through untouched. Larger groups collapse into a single merged finding
// that keeps the most severe member's severity, title, and location, unions
// the categories and reviewer names, combines distinct descriptions as
// numbered perspectives, takes the longest suggested fix, and averages
// confidence.
func Deduplicate(findings []review.Finding) []review.Finding {
	if len(findings) == 0 {
		return nil
	}

	groups := make(map[locationKey][]review.Finding)
	var order []locationKey
	for _, f := range findings {
		key := locationKey{f.File, f.Line}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f)
	}

	out := make([]review.Finding, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, mergeLocationGroup(group))
	}
	return out
}

func mergeLocationGroup(group []review.Finding) review.Finding {
	// Most severe first; the stable sort keeps flattened input order on ties,
	// so the earliest reviewer's finding wins.
	sorted := make([]review.Finding, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return review.SeverityRank(sorted[i].Severity) < review.SeverityRank(sorted[j].Severity)
	})
	primary := sorted[0]

	var categories, reviewers []string
	for _, f := range sorted {
		categories = append(categories, f.Category)
		if f.Reviewer != "" {
			reviewers = append(reviewers, f.Reviewer)
		}
	}

	// Distinct descriptions after case/whitespace normalization, kept in
	// group order.
	var distinct []string
	seen := make(map[string]bool)
	for _, f := range sorted {
		norm := strings.TrimSpace(strings.ToLower(f.Description))
		if !seen[norm] {
			seen[norm] = true
			distinct = append(distinct, f.Description)
		}
	}
	description := primary.Description
	if len(distinct) > 1 {
		parts := make([]string, len(distinct))
		for i, d := range distinct {
			parts[i] = fmt.Sprintf("**Perspective %d:** %s", i+1, d)
		}
		description = strings.Join(parts, "\n\n")
	}

	// Longest non-empty suggested fix; strict comparison keeps the first on ties.
	var fix string
	for _, f := range sorted {
		if f.SuggestedFix != "" && len(f.SuggestedFix) > len(fix) {
			fix = f.SuggestedFix
		}
	}

	var confidenceSum float64
	for _, f := range sorted {
		confidenceSum += f.Confidence
	}

	return review.Finding{
		File:         primary.File,
		Line:         primary.Line,
		Severity:     primary.Severity,
		Category:     joinSortedUnique(categories),
		Title:        primary.Title,
		Description:  description,
		SuggestedFix: fix,
		Reviewer:     joinSortedUnique(reviewers),
		Confidence:   confidenceSum / float64(len(sorted)),
	}
}

func joinSortedUnique(values []string) string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	sort.Strings(unique)
	return strings.Join(unique, ", ")
}
