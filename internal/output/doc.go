// Package output renders consensus reports in terminal, JSON, and markdown
// formats.
package output
