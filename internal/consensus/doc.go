// Package consensus aggregates findings from multiple reviewers into a single
// verdict-bearing result.
//
// The engine is a pure transformation over already-materialized reviewer
// outputs: findings are flattened, deduplicated by exact (file, line) location,
// reconciled across nearby lines with a seed-anchored similarity scan, sorted
// by severity, and tallied. Reviewer-level decisions determine the overall
// verdict independently of the finding pipeline, so a reviewer that reported
// no findings but requested changes still forces the conservative outcome.
//
// The engine performs no I/O, holds no state between calls, and is safe to
// invoke concurrently as long as each call gets its own input slice.
package consensus
