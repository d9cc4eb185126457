// Codeforge reviews pull requests with a panel of role-specialized LLM
// reviewers (security, correctness, performance, style) and merges their
// findings into a single consensus verdict with deterministic exit codes.
//
// Usage:
//
//	codeforge review pr 42                # review a GitHub pull request
//	codeforge review pr 42 --dry-run      # review without posting to GitHub
//	codeforge review diff changes.patch   # review a unified diff file
//	git diff | codeforge review diff      # review a diff from stdin
//	codeforge config show                 # print the effective configuration
//
// See https://github.com/codeforge/codeforge for full documentation.
package main
