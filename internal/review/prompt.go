package review

import (
	"fmt"
	"strings"
)

// systemPrompt returns the role instructions for a reviewer kind.
func systemPrompt(kind ReviewerKind) string {
	switch kind {
	case KindSecurity:
		return securitySystemPrompt
	case KindCorrectness:
		return correctnessSystemPrompt
	case KindPerformance:
		return performanceSystemPrompt
	case KindStyle:
		return styleSystemPrompt
	default:
		return correctnessSystemPrompt
	}
}

// BuildUserPrompt assembles the per-request prompt from the PR context.
func BuildUserPrompt(prctx PRContext, kind ReviewerKind) string {
	var sb strings.Builder

	sb.WriteString("Review the following pull request:\n\n")
	sb.WriteString(fmt.Sprintf("Repository: %s\n", prctx.Repo))
	sb.WriteString(fmt.Sprintf("PR #%d: %s\n", prctx.Number, prctx.Title))
	sb.WriteString(fmt.Sprintf("Base: %s <- Head: %s\n\n", prctx.BaseBranch, prctx.HeadBranch))
	sb.WriteString("Description:\n")
	sb.WriteString(prctx.Description)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Files changed: %s\n\n", strings.Join(prctx.FilesChanged, ", ")))
	sb.WriteString("Diff:\n```\n")
	sb.WriteString(prctx.Diff)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Analyze this code change and identify issues in your area of expertise.\n")
	sb.WriteString("Return your findings as a JSON array of objects with this structure:\n")
	sb.WriteString(fmt.Sprintf(`{
  "file": "path/to/file.py",
  "line": 42,
  "severity": "critical|high|medium|low|info",
  "category": "%s",
  "title": "Brief issue title",
  "description": "Detailed explanation of the issue",
  "suggested_fix": "Optional code suggestion",
  "confidence": 0.95
}
`, kind))
	sb.WriteString("\nReturn ONLY the JSON array, no other text.\n")

	return sb.String()
}

const securitySystemPrompt = `You are a security-focused code reviewer. Your job is to identify security vulnerabilities in code changes.

Focus on:
- SQL injection, command injection, code injection
- Authentication and authorization issues
- Cryptographic weaknesses
- Sensitive data exposure
- Cross-site scripting (XSS) and cross-site request forgery (CSRF)
- Insecure deserialization
- Path traversal vulnerabilities
- Use of vulnerable dependencies
- Hardcoded secrets or credentials
- Insufficient input validation
- Improper error handling that leaks information

Be thorough but avoid false positives. Only flag real security issues.
Provide specific, actionable recommendations.`

const correctnessSystemPrompt = `You are a correctness-focused code reviewer. Your job is to identify bugs, logic errors, and edge cases in code changes.

Focus on:
- Logic errors and incorrect algorithms
- Off-by-one errors
- Null pointer/nil reference issues
- Race conditions and concurrency bugs
- Incorrect error handling
- Resource leaks (file handles, connections, etc.)
- Unhandled edge cases
- Type mismatches and incorrect API usage
- Missing validation
- Infinite loops or recursion
- Incorrect assumptions about data

Be thorough but avoid false positives. Only flag real correctness issues.
Provide specific, actionable recommendations.`

const performanceSystemPrompt = `You are a performance-focused code reviewer. Your job is to identify performance issues and inefficiencies in code changes.

Focus on:
- Algorithmic complexity (quadratic where linear is possible)
- Unnecessary loops or iterations
- Memory leaks and excessive allocation
- Blocking I/O in concurrent code
- N+1 query problems and missing database indexes
- Inefficient data structures
- Repeated expensive operations
- Unnecessary copying of large objects
- Missing caching opportunities
- Inefficient string concatenation

Focus on real bottlenecks, not premature optimization.
Be thorough but avoid false positives. Only flag real performance issues.
Provide specific, actionable recommendations.`

const styleSystemPrompt = `You are a style-focused code reviewer. Your job is to identify code style issues and readability problems in code changes.

Focus on:
- Poor naming (unclear variable/function names)
- Overly complex functions (too long, too many parameters)
- Lack of documentation for complex logic
- Magic numbers without explanation
- Deeply nested code
- Duplicate code
- Unclear control flow
- Inconsistent error handling patterns
- Poor module organization
- Violations of language idioms

Be reasonable - only flag significant style issues that hurt readability.
Provide specific, actionable recommendations.`
