// Package workspace bundles the external collaborator interfaces spec.md
// §6 requires the checker's host compiler to provide: a file table for
// diagnostics, the builtin type registry, and a name-scope API.
package workspace

import "github.com/susji/jcheck/types"

// Workspace is the single explicit parameter threaded through check/ and
// flatten/ in place of the source's global Workspace pointer (spec.md §9's
// "Global context" re-architecture note: "make this an explicit parameter
// rather than a process global, so multiple simultaneous compilations are
// possible").
type Workspace struct {
	Files    *Files
	Registry *types.Registry
	Scope    Scope
}

// New builds a Workspace with a fresh Registry and the given Scope
// implementation (pass workspace.NewMapScope() for tests/demo use, or a
// host compiler's own Scope).
func New(scope Scope) *Workspace {
	return &Workspace{
		Files:    NewFiles(),
		Registry: types.NewRegistry(),
		Scope:    scope,
	}
}
