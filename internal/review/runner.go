package review

import (
	"context"
	"sync"
)

// Runner executes a set of reviewers concurrently against one PR context.
type Runner struct {
	Reviewers         []Reviewer
	MaxFindings       int
	SeverityThreshold Severity

	// Warnf receives a message for each reviewer that fails. Nil disables
	// warnings.
	Warnf func(format string, args ...any)
}

// Run reviews prctx with every configured reviewer in parallel and returns
// the results that completed successfully, in reviewer order. A failing
// reviewer is reported through Warnf and excluded; it never aborts the run.
func (r *Runner) Run(ctx context.Context, prctx PRContext) []ReviewResult {
	type outcome struct {
		result ReviewResult
		err    error
	}
	outcomes := make([]outcome, len(r.Reviewers))

	var wg sync.WaitGroup
	for i, reviewer := range r.Reviewers {
		wg.Add(1)
		go func(i int, reviewer Reviewer) {
			defer wg.Done()
			result, err := reviewer.Review(ctx, prctx, r.MaxFindings)
			outcomes[i] = outcome{result: result, err: err}
		}(i, reviewer)
	}
	wg.Wait()

	results := make([]ReviewResult, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			if r.Warnf != nil {
				r.Warnf("reviewer %s failed: %v", r.Reviewers[i].Name, o.err)
			}
			continue
		}
		result := o.result
		result.Findings = filterBySeverity(result.Findings, r.SeverityThreshold)
		results = append(results, result)
	}
	return results
}

// filterBySeverity drops findings below the threshold. An unknown or empty
// threshold behaves as "low", reporting everything except info.
func filterBySeverity(findings []Finding, threshold Severity) []Finding {
	thresholdRank := SeverityRank(threshold)
	if thresholdRank == severityRankUnknown {
		thresholdRank = SeverityRank(SeverityLow)
	}
	kept := make([]Finding, 0, len(findings))
	for _, f := range findings {
		rank := SeverityRank(f.Severity)
		if rank == severityRankUnknown {
			rank = SeverityRank(SeverityInfo)
		}
		if rank <= thresholdRank {
			kept = append(kept, f)
		}
	}
	return kept
}
