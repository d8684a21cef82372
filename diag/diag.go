// Package diag implements spec.md §6's diagnostic output contract:
// `path:line:col: Error:|Info: message`, a blank line, and a two-line
// source excerpt (previous line dim/cyan, offending line with the bad span
// underlined in red). No teacher analogue exists (the teacher printed
// errors as plain %s via fmt.Fprintf in cmd/parse/main.go); colorization
// goes through github.com/fatih/color, the library this retrieval pack's
// compiler/interpreter projects consistently reach for.
package diag

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/workspace"
)

var (
	contextColor = color.New(color.FgCyan, color.Faint)
	spanColor    = color.New(color.FgRed, color.Bold)
	labelError   = color.New(color.FgRed, color.Bold)
	labelInfo    = color.New(color.FgYellow, color.Bold)
)

// ReportError prints err at loc in spec.md §6's format and terminates the
// process, matching the source's report_error -- type errors are fatal by
// construction (spec.md §4.9); there is no local recovery.
func ReportError(w *workspace.Workspace, loc ast.Location, err error) {
	report(w, loc, "Error", labelError, err.Error())
	os.Exit(1)
}

// ReportInfo prints a non-fatal informational note in the same format,
// without exiting.
func ReportInfo(w *workspace.Workspace, loc ast.Location, message string) {
	report(w, loc, "Info", labelInfo, message)
}

func report(w *workspace.Workspace, loc ast.Location, label string, labelColor *color.Color, message string) {
	fmt.Fprintf(os.Stderr, "%s:%d:%d: %s %s\n\n",
		loc.File, loc.Line0, loc.Col0, labelColor.Sprint(label+":"), message)
	printExcerpt(w, loc)
	fmt.Fprintln(os.Stderr)
}

// printExcerpt prints the line before loc (dim/cyan, for context) and
// loc's own line with the offending span underlined in red.
func printExcerpt(w *workspace.Workspace, loc ast.Location) {
	if w == nil || w.Files == nil {
		return
	}
	if prev := w.Files.Line(loc.File, loc.Line0-1); prev != "" {
		fmt.Fprintln(os.Stderr, contextColor.Sprint(prev))
	}
	line := w.Files.Line(loc.File, loc.Line0)
	fmt.Fprintln(os.Stderr, line)
	fmt.Fprintln(os.Stderr, underline(line, loc))
}

// underline builds the ^^^-style marker line beneath line, spanning from
// Col0 to Col1 (or to end-of-line if the span doesn't end on Line0).
func underline(line string, loc ast.Location) string {
	col0 := loc.Col0
	col1 := loc.Col1
	if loc.Line1 != loc.Line0 || col1 < col0 {
		col1 = len(line) + 1
	}
	if col0 < 1 {
		col0 = 1
	}
	b := &strings.Builder{}
	for i := 1; i < col0; i++ {
		b.WriteByte(' ')
	}
	marker := strings.Repeat("^", max(1, col1-col0))
	b.WriteString(spanColor.Sprint(marker))
	return b.String()
}
