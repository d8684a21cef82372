package workspace

import "strings"

// Files is a thin line-indexed source cache, used only by diag for
// excerpts (spec.md §6: "file table for diagnostics"). Source-file loading
// itself is an external collaborator (§1); Files merely holds whatever
// text the host compiler already read.
type Files struct {
	sources map[string][]string
}

func NewFiles() *Files {
	return &Files{sources: map[string][]string{}}
}

// Add registers path's full text, split into lines, for later excerpt
// lookups. Re-adding a path overwrites its previous contents.
func (f *Files) Add(path, text string) {
	f.sources[path] = strings.Split(text, "\n")
}

// Line returns line n (1-indexed) of path, or "" if out of range or the
// file was never registered.
func (f *Files) Line(path string, n int) string {
	lines, ok := f.sources[path]
	if !ok || n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
