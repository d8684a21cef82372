package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/ast"
)

func TestSlotOfGetSet(t *testing.T) {
	var cur ast.Expr = &ast.Number{Integer: 1}
	slot := ast.SlotOf(func() ast.Expr { return cur }, func(e ast.Expr) { cur = e })

	n := slot.Get().(*ast.Number)
	assert.Equal(t, uint64(1), n.Integer)

	replacement := &ast.Number{Integer: 2}
	slot.Set(replacement)
	assert.Same(t, replacement, cur)
}

func TestSubstituteOverwritesAndReturns(t *testing.T) {
	var cur ast.Expr = &ast.Number{Integer: 1}
	slot := ast.SlotOf(func() ast.Expr { return cur }, func(e ast.Expr) { cur = e })

	replacement := &ast.Number{Integer: 9}
	got := ast.Substitute(slot, replacement)

	assert.Same(t, ast.Expr(replacement), got)
	assert.Same(t, replacement, cur)
}

func TestWorkItemVariantsAreMutuallyExclusive(t *testing.T) {
	exprItem := ast.ExprWork(ast.SlotOf(func() ast.Expr { return nil }, func(ast.Expr) {}))
	assert.True(t, exprItem.IsExpr())
	assert.False(t, exprItem.IsHook())

	stmtItem := ast.StmtWork(&ast.Block{})
	assert.False(t, stmtItem.IsExpr())
	assert.False(t, stmtItem.IsHook())
	assert.NotNil(t, stmtItem.Statement())

	ran := false
	hookItem := ast.HookWork(func() error { ran = true; return nil })
	assert.False(t, hookItem.IsExpr())
	assert.True(t, hookItem.IsHook())
	require.NoError(t, hookItem.Hook()())
	assert.True(t, ran)
}
