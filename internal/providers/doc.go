// Package providers contains clients for the LLM backends reviewers run on.
// Each client implements the Client interface and normalizes rate-limit and
// authentication failures into typed errors the caller can act on.
package providers
