// Package cli wires the codeforge commands: reviewing pull requests and
// local diffs, and inspecting configuration.
package cli
