package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/check"
)

func TestIsLvalueUnresolvedIdentIsNot(t *testing.T) {
	assert.False(t, check.IsLvalue(&ast.Ident{Name: "x"}))
}

func TestIsLvalueNonConstantIdentIs(t *testing.T) {
	decl := &ast.Declaration{Name: "x", Flags: ast.FlagGlobalVariable}
	assert.True(t, check.IsLvalue(&ast.Ident{Name: "x", ResolvedDeclaration: decl}))
}

func TestIsLvalueConstantIdentIsNot(t *testing.T) {
	decl := &ast.Declaration{Name: "x", Flags: ast.FlagConstant}
	assert.False(t, check.IsLvalue(&ast.Ident{Name: "x", ResolvedDeclaration: decl}))
}

func TestIsLvalueSelectorOfLvalue(t *testing.T) {
	decl := &ast.Declaration{Name: "p", Flags: ast.FlagGlobalVariable}
	ident := &ast.Ident{Name: "p", ResolvedDeclaration: decl}
	sel := &ast.Selector{Namespace: ident, Name: "x"}
	assert.True(t, check.IsLvalue(sel))
}

func TestIsLvalueDereferenceOfLvalue(t *testing.T) {
	decl := &ast.Declaration{Name: "p", Flags: ast.FlagGlobalVariable}
	ident := &ast.Ident{Name: "p", ResolvedDeclaration: decl}
	deref := &ast.Unary{Op: ast.UnaryDereference, Sub: ident}
	assert.True(t, check.IsLvalue(deref))

	negate := &ast.Unary{Op: ast.UnaryNegate, Sub: ident}
	assert.False(t, check.IsLvalue(negate))
}

func TestIsLvalueSubscriptOfLvalue(t *testing.T) {
	decl := &ast.Declaration{Name: "a", Flags: ast.FlagGlobalVariable}
	ident := &ast.Ident{Name: "a", ResolvedDeclaration: decl}
	idx := &ast.Binary{Op: ast.BinaryIndex, Left: ident, Right: &ast.Number{Integer: 0}}
	assert.True(t, check.IsLvalue(idx))
}

func TestIsLvalueRvalueExpressionIsNot(t *testing.T) {
	assert.False(t, check.IsLvalue(&ast.Number{Integer: 5}))
}
