package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/flatten"
	"github.com/susji/jcheck/types"
)

func TestFlattenSimpleArithIsPostOrder(t *testing.T) {
	left := &ast.Number{Integer: 1}
	right := &ast.Number{Integer: 2}
	bin := &ast.Binary{Op: ast.BinaryAdd, Left: left, Right: right}
	decl := &ast.Declaration{Value: bin}

	items := flatten.Flatten(decl)
	require.Len(t, items, 3, "left, right, then the binary itself")
	assert.Same(t, ast.Expr(left), items[0].Slot().Get())
	assert.Same(t, ast.Expr(right), items[1].Slot().Get())
	assert.Same(t, ast.Expr(bin), items[2].Slot().Get())
}

// TestFlattenForLoopInsertsHookBeforeBody exercises the iterator-binding
// hook: Range's work item must precede the hook, and the hook must precede
// anything from Body.
func TestFlattenForLoopInsertsHookBeforeBody(t *testing.T) {
	reg := types.NewRegistry()
	rangeExpr := &ast.Binary{Op: ast.BinaryRange, Left: &ast.Number{Integer: 0}, Right: &ast.Number{Integer: 5}}
	iterDecl := &ast.Declaration{Name: "i"}
	bodyIdent := &ast.Ident{Name: "i"}
	forStmt := &ast.For{
		Range:    rangeExpr,
		Iterator: iterDecl,
		Body: &ast.Block{
			Statements: []ast.Statement{&ast.ExpressionStatement{Sub: bodyIdent}},
		},
	}
	proc := &ast.Procedure{
		LambdaType: &ast.TypeDefinition{Kind: ast.TypeDefLambda, ReturnType: &ast.TypeDefinition{Kind: ast.TypeDefIdent, Name: "void"}},
		Body:       &ast.Block{Statements: []ast.Statement{forStmt}},
	}
	decl := &ast.Declaration{Value: proc}

	items := flatten.Flatten(decl)

	var rangeIdx, hookIdx, bodyIdx int = -1, -1, -1
	for i, it := range items {
		switch {
		case it.IsExpr() && it.Slot().Get() == ast.Expr(rangeExpr):
			rangeIdx = i
		case it.IsHook():
			hookIdx = i
		case it.IsExpr() && it.Slot().Get() == ast.Expr(bodyIdent):
			bodyIdx = i
		}
	}
	require.NotEqual(t, -1, rangeIdx)
	require.NotEqual(t, -1, hookIdx)
	require.NotEqual(t, -1, bodyIdx)
	assert.Less(t, rangeIdx, hookIdx, "range must be checked before the iterator-binding hook runs")
	assert.Less(t, hookIdx, bodyIdx, "the hook must run before body identifiers can reference the iterator")

	// Simulate check having typed Range, then run the hook the way Run does.
	rangeExpr.SetInferredType(reg.Int)
	require.NoError(t, items[hookIdx].Hook()())
	assert.True(t, types.Equal(iterDecl.Inferred, reg.Int))
	assert.NotZero(t, iterDecl.Flags&ast.FlagHasBeenTypechecked)
}

func TestFlattenHookNoOpsWhenRangeUntyped(t *testing.T) {
	rangeExpr := &ast.Binary{Op: ast.BinaryRange, Left: &ast.Number{Integer: 0}, Right: &ast.Number{Integer: 5}}
	iterDecl := &ast.Declaration{Name: "i"}
	forStmt := &ast.For{Range: rangeExpr, Iterator: iterDecl, Body: &ast.Block{}}
	proc := &ast.Procedure{
		LambdaType: &ast.TypeDefinition{Kind: ast.TypeDefLambda, ReturnType: &ast.TypeDefinition{Kind: ast.TypeDefIdent, Name: "void"}},
		Body:       &ast.Block{Statements: []ast.Statement{forStmt}},
	}
	decl := &ast.Declaration{Value: proc}
	items := flatten.Flatten(decl)

	for _, it := range items {
		if it.IsHook() {
			require.NoError(t, it.Hook()())
		}
	}
	assert.Nil(t, iterDecl.Inferred, "hook must not guess a type before Range has one")
}
