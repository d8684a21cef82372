package workspace

import "github.com/susji/jcheck/ast"

// Scope is the name-resolution contract the surrounding compiler (the
// parser/scope-construction stage, explicitly out of scope per spec.md §1)
// must satisfy. The checker never walks ast.Block.Parent chains directly --
// it always goes through Scope, so a host compiler can back it with
// whatever scope representation it likes (the teacher's own
// analyze/scope.go closure-chain, a symbol table, anything).
type Scope interface {
	// FindDeclarationFromIdentifier resolves a bare name looked up from
	// inside block, walking outward through enclosing scopes.
	FindDeclarationFromIdentifier(block *ast.Block, name string) (*ast.Declaration, bool)

	// FindDeclarationInBlock resolves name directly inside block (no
	// walking outward) -- used for struct/enum member lookups, where block
	// is the opaque handle stored in types.Struct.Block/types.Enum.Block.
	FindDeclarationInBlock(block any, name string) (*ast.Declaration, bool)
}

// MapScope is a parent-linked reference Scope implementation, grounded on
// the teacher's analyze/scope.go (`scope{parent, node, vars map[string]*types.Type}`),
// generalized to resolve full *ast.Declaration values instead of bare
// *types.Type, and to work directly off ast.Block.Parent/Declarations
// rather than a side-table built during a single linear pass.
type MapScope struct{}

// NewMapScope returns the reference Scope implementation used by tests and
// the demo CLI.
func NewMapScope() *MapScope {
	return &MapScope{}
}

func (*MapScope) FindDeclarationFromIdentifier(block *ast.Block, name string) (*ast.Declaration, bool) {
	for b := block; b != nil; b = b.Parent {
		for _, d := range b.Declarations {
			if d.Name == name {
				return d, true
			}
		}
	}
	return nil, false
}

func (*MapScope) FindDeclarationInBlock(block any, name string) (*ast.Declaration, bool) {
	b, ok := block.(*ast.Block)
	if !ok || b == nil {
		return nil, false
	}
	for _, d := range b.Declarations {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
