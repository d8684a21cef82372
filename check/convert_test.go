package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/check"
	"github.com/susji/jcheck/types"
)

func slotOver(e ast.Expr) (ast.Slot, func() ast.Expr) {
	cur := e
	slot := ast.SlotOf(func() ast.Expr { return cur }, func(x ast.Expr) { cur = x })
	return slot, func() ast.Expr { return cur }
}

func TestCheckThatTypesMatchAlreadyEqual(t *testing.T) {
	reg := types.NewRegistry()
	n := ast.NewIntNumber(ast.Location{}, 5, true, reg.Int)
	slot, _ := slotOver(n)
	err := check.CheckThatTypesMatch(reg, slot, reg.Int)
	assert.Nil(t, err)
}

func TestCheckThatTypesMatchNumberRefinalizes(t *testing.T) {
	reg := types.NewRegistry()
	n := ast.NewComptimeIntNumber(ast.Location{}, 5, true, reg.Int)
	slot, get := slotOver(n)
	err := check.CheckThatTypesMatch(reg, slot, reg.U8)
	require.Nil(t, err)
	assert.True(t, types.Equal(get().InferredType(), reg.U8))
}

func TestCheckThatTypesMatchStringToCharCode(t *testing.T) {
	reg := types.NewRegistry()
	lit := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.String}, Kind: types.LiteralString, Str: "A"}
	slot, get := slotOver(lit)
	err := check.CheckThatTypesMatch(reg, slot, reg.U8)
	require.Nil(t, err)
	n, ok := get().(*ast.Number)
	require.True(t, ok, "string literal must be substituted with a char-code Number")
	assert.Equal(t, uint64('A'), n.Integer)
}

func TestCheckThatTypesMatchStringToBytePointer(t *testing.T) {
	reg := types.NewRegistry()
	lit := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.String}, Kind: types.LiteralString, Str: "hi"}
	slot, get := slotOver(ast.Expr(lit))
	ptr := &types.Type{Kind: types.KindPointer, Pointee: reg.U8}
	err := check.CheckThatTypesMatch(reg, slot, ptr)
	require.Nil(t, err)
	assert.True(t, types.Equal(get().InferredType(), ptr))
}

func TestCheckThatTypesMatchFixedArrayToSlice(t *testing.T) {
	reg := types.NewRegistry()
	fixed := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: 3, Element: reg.Int}}
	slice := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArraySlice, Element: reg.Int}}
	arr := &ast.Ident{ExprHeader: ast.ExprHeader{Type: fixed}, Name: "a"}
	slot, get := slotOver(ast.Expr(arr))
	err := check.CheckThatTypesMatch(reg, slot, slice)
	require.Nil(t, err)
	inst, ok := get().(*ast.TypeInstantiation)
	require.True(t, ok, "fixed array promoted to slice must synthesize a TypeInstantiation")
	assert.True(t, types.Equal(inst.InferredType(), slice))
	assert.Len(t, inst.Arguments, 2, "slice literal is {pointer, length}")
}

func TestCheckThatTypesMatchNullToPointer(t *testing.T) {
	reg := types.NewRegistry()
	ptr := &types.Type{Kind: types.KindPointer, Pointee: reg.Int}
	lit := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.Null}, Kind: types.LiteralNull}
	slot, get := slotOver(ast.Expr(lit))
	err := check.CheckThatTypesMatch(reg, slot, ptr)
	require.Nil(t, err)
	assert.True(t, types.Equal(get().InferredType(), ptr))
}

func TestCheckThatTypesMatchNullToLambda(t *testing.T) {
	reg := types.NewRegistry()
	lambda := &types.Type{Kind: types.KindLambda, Extra: &types.Lambda{ReturnType: reg.Void}}
	lit := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.Null}, Kind: types.LiteralNull}
	slot, get := slotOver(ast.Expr(lit))
	err := check.CheckThatTypesMatch(reg, slot, lambda)
	require.Nil(t, err)
	assert.True(t, types.Equal(get().InferredType(), lambda))
}

func TestCheckThatTypesMatchRejectsGenuineMismatch(t *testing.T) {
	reg := types.NewRegistry()
	b := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.Bool}, Kind: types.LiteralBool, Bool: true}
	slot, _ := slotOver(ast.Expr(b))
	err := check.CheckThatTypesMatch(reg, slot, reg.String)
	require.NotNil(t, err)
	assert.Equal(t, check.ErrKindTypeMismatch, err.Kind)
}

func TestAutocastToBoolNoOpOnBool(t *testing.T) {
	reg := types.NewRegistry()
	b := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.Bool}, Kind: types.LiteralBool, Bool: true}
	slot, get := slotOver(ast.Expr(b))
	ok := check.AutocastToBool(reg, slot)
	assert.True(t, ok)
	assert.Same(t, ast.Expr(b), get())
}

func TestAutocastToBoolNullIsFalse(t *testing.T) {
	reg := types.NewRegistry()
	lit := &ast.Literal{ExprHeader: ast.ExprHeader{Type: reg.Null}, Kind: types.LiteralNull}
	slot, get := slotOver(ast.Expr(lit))
	ok := check.AutocastToBool(reg, slot)
	require.True(t, ok)
	b, isLit := get().(*ast.Literal)
	require.True(t, isLit)
	assert.False(t, b.Bool)
}

func TestAutocastToBoolNumberBecomesNeqZero(t *testing.T) {
	reg := types.NewRegistry()
	n := ast.NewIntNumber(ast.Location{}, 5, true, reg.Int)
	slot, get := slotOver(ast.Expr(n))
	ok := check.AutocastToBool(reg, slot)
	require.True(t, ok)
	bin, isBin := get().(*ast.Binary)
	require.True(t, isBin)
	assert.Equal(t, ast.BinaryNeq, bin.Op)
}

func TestAutocastToBoolUnconvertibleKind(t *testing.T) {
	reg := types.NewRegistry()
	st := &types.Type{Kind: types.KindStruct, Extra: &types.Struct{Name: "Point"}}
	ident := &ast.Ident{ExprHeader: ast.ExprHeader{Type: st}, Name: "p"}
	slot, _ := slotOver(ast.Expr(ident))
	ok := check.AutocastToBool(reg, slot)
	assert.False(t, ok, "Struct has no bool conversion")
}
