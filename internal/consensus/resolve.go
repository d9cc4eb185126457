package consensus

import (
	"sort"
	"strings"

	"github.com/codeforge/codeforge/internal/review"
)

// closeCallRatio is the fraction of the top weight within which a finding
// counts as a close call and is kept unmerged.
const closeCallRatio = 0.8

type windowKey struct {
	file string
	base int
}

// ResolveConflicts reconciles findings that describe the same issue at
// nearby but non-identical lines, which exact-location deduplication misses.
//
// Findings are bucketed into 3-line windows per file as a coarse pre-filter,
// then split into similarity groups. Each group resolves to its single
// highest-weight member, except when more than one member is within 80% of
// the top weight: those close calls are all kept unmerged rather than forcing
// a choice, which can leave near-duplicates in the final result. That is
// intentional conservative behavior.
//
// Output order follows first-encountered window order, then group order; the
// final severity sort happens later in Aggregate.
func ResolveConflicts(findings []review.Finding) []review.Finding {
	if len(findings) == 0 {
		return nil
	}

	windows := make(map[windowKey][]review.Finding)
	var order []windowKey
	for _, f := range findings {
		key := windowKey{f.File, f.Line / 3 * 3}
		if _, seen := windows[key]; !seen {
			order = append(order, key)
		}
		windows[key] = append(windows[key], f)
	}

	var resolved []review.Finding
	for _, key := range order {
		group := windows[key]
		if len(group) == 1 {
			resolved = append(resolved, group[0])
			continue
		}
		for _, similar := range groupSimilar(group) {
			resolved = append(resolved, resolveGroup(similar)...)
		}
	}
	return resolved
}

// groupSimilar partitions findings with a single left-to-right scan: the
// first ungrouped finding seeds a group and absorbs every later ungrouped
// finding similar to the seed. Similarity is seed-anchored, not transitive,
// so grouping depends on input order. That order dependence is a defined
// behavior, not an accident.
func groupSimilar(findings []review.Finding) [][]review.Finding {
	if len(findings) <= 1 {
		return [][]review.Finding{findings}
	}

	var groups [][]review.Finding
	used := make([]bool, len(findings))
	for i, seed := range findings {
		if used[i] {
			continue
		}
		group := []review.Finding{seed}
		used[i] = true
		for j := i + 1; j < len(findings); j++ {
			if !used[j] && areSimilar(seed, findings[j]) {
				group = append(group, findings[j])
				used[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// resolveGroup picks the winner(s) of one similarity group by weighting each
// finding as (5 - severity rank) * confidence.
func resolveGroup(group []review.Finding) []review.Finding {
	if len(group) == 1 {
		return group
	}

	type weighted struct {
		weight  float64
		finding review.Finding
	}
	ws := make([]weighted, len(group))
	for i, f := range group {
		ws[i] = weighted{
			weight:  float64(5-review.SeverityRank(f.Severity)) * f.Confidence,
			finding: f,
		}
	}
	// Stable descending sort keeps group order on equal weights for
	// reproducible output.
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].weight > ws[j].weight })

	maxWeight := ws[0].weight
	var closeCalls []review.Finding
	for _, w := range ws {
		if w.weight >= maxWeight*closeCallRatio {
			closeCalls = append(closeCalls, w.finding)
		}
	}
	if len(closeCalls) > 1 {
		// Too close to call: keep all rather than force a choice.
		return closeCalls
	}
	return []review.Finding{ws[0].finding}
}

// areSimilar reports whether two findings appear to describe the same
// underlying issue: same file, within 5 lines, intersecting category sets,
// and at least 30% of the smaller title's words in common.
func areSimilar(a, b review.Finding) bool {
	if a.File != b.File {
		return false
	}
	if delta := a.Line - b.Line; delta > 5 || delta < -5 {
		return false
	}
	if !categoriesIntersect(a.Category, b.Category) {
		return false
	}

	wordsA := titleWords(a.Title)
	wordsB := titleWords(b.Title)
	common := 0
	for w := range wordsA {
		if wordsB[w] {
			common++
		}
	}
	smaller := len(wordsA)
	if len(wordsB) < smaller {
		smaller = len(wordsB)
	}
	return float64(common) >= float64(smaller)*0.3
}

// categoriesIntersect treats each category field as a comma-joined set, as
// produced by merged findings.
func categoriesIntersect(a, b string) bool {
	setA := categorySet(a)
	for _, c := range strings.Split(b, ",") {
		if setA[strings.ToLower(strings.TrimSpace(c))] {
			return true
		}
	}
	return false
}

func categorySet(category string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range strings.Split(category, ",") {
		set[strings.ToLower(strings.TrimSpace(c))] = true
	}
	return set
}

func titleWords(title string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		set[w] = true
	}
	return set
}
