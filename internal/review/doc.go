// Package review defines the core review data model and the reviewers that
// produce it.
//
// Finding, ReviewResult, and PRContext are validated value types shared by
// the whole system. A Reviewer is one of a closed set of roles (security,
// correctness, performance, style), each pairing a role-specific prompt with
// an LLM provider client and parsing the response into findings. The Runner
// executes a set of reviewers concurrently with per-reviewer isolation: a
// failing reviewer is dropped with a warning and never aborts the run.
package review
