// Package diff extracts metadata from unified diff text.
package diff

import "strings"

// ExtractFiles returns the distinct file paths touched by a unified diff,
// in order of first appearance. Git's a/ and b/ prefixes are stripped and
// /dev/null entries for added or deleted files are skipped.
func ExtractFiles(diffText string) []string {
	seen := make(map[string]bool)
	var files []string

	for _, line := range strings.Split(diffText, "\n") {
		var path string
		switch {
		case strings.HasPrefix(line, "--- "):
			path = strings.TrimSpace(line[4:])
			path = strings.TrimPrefix(path, "a/")
		case strings.HasPrefix(line, "+++ "):
			path = strings.TrimSpace(line[4:])
			path = strings.TrimPrefix(path, "b/")
		default:
			continue
		}
		if path == "" || path == "/dev/null" {
			continue
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	return files
}
