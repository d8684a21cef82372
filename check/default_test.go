package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/check"
	"github.com/susji/jcheck/types"
)

func TestDefaultForNumberIsZero(t *testing.T) {
	reg := types.NewRegistry()
	d := check.DefaultFor(reg, reg.Int, ast.Location{})
	n, ok := d.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, uint64(0), n.Integer)
	assert.True(t, n.InferredTypeIsFinal)
}

func TestDefaultForFloatIsZero(t *testing.T) {
	reg := types.NewRegistry()
	d := check.DefaultFor(reg, reg.Float64, ast.Location{})
	n, ok := d.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, 0.0, n.Real)
	assert.True(t, n.IsFloat)
	assert.True(t, n.Float64)
}

func TestDefaultForBoolIsFalse(t *testing.T) {
	reg := types.NewRegistry()
	d := check.DefaultFor(reg, reg.Bool, ast.Location{})
	lit, ok := d.(*ast.Literal)
	require.True(t, ok)
	assert.False(t, lit.Bool)
}

func TestDefaultForStringIsEmpty(t *testing.T) {
	reg := types.NewRegistry()
	d := check.DefaultFor(reg, reg.String, ast.Location{})
	lit, ok := d.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "", lit.Str)
}

func TestDefaultForPointerIsNull(t *testing.T) {
	reg := types.NewRegistry()
	ptr := &types.Type{Kind: types.KindPointer, Pointee: reg.Int}
	d := check.DefaultFor(reg, ptr, ast.Location{})
	lit, ok := d.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, types.LiteralNull, lit.Kind)
}

func TestDefaultForFixedArrayFillsEachElement(t *testing.T) {
	reg := types.NewRegistry()
	arr := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: 3, Element: reg.Int}}
	d := check.DefaultFor(reg, arr, ast.Location{})
	inst, ok := d.(*ast.TypeInstantiation)
	require.True(t, ok)
	assert.Len(t, inst.Arguments, 3)
}

func TestDefaultForSliceIsEmpty(t *testing.T) {
	reg := types.NewRegistry()
	arr := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArraySlice, Element: reg.Int}}
	d := check.DefaultFor(reg, arr, ast.Location{})
	inst, ok := d.(*ast.TypeInstantiation)
	require.True(t, ok)
	assert.Empty(t, inst.Arguments)
}

func TestDefaultForStructInstantiatesEachFieldDefault(t *testing.T) {
	reg := types.NewRegistry()
	st := &types.Struct{Name: "Point", FieldTypes: []*types.Type{reg.Int, reg.Int}, FieldCount: 2}
	structType := &types.Type{Kind: types.KindStruct, Extra: st}
	d := check.DefaultFor(reg, structType, ast.Location{})
	inst, ok := d.(*ast.TypeInstantiation)
	require.True(t, ok)
	require.Len(t, inst.Arguments, 2)
	for _, arg := range inst.Arguments {
		n, ok := arg.(*ast.Number)
		require.True(t, ok)
		assert.Equal(t, uint64(0), n.Integer)
	}
}

func TestDefaultForEnumPanics(t *testing.T) {
	reg := types.NewRegistry()
	en := &types.Type{Kind: types.KindEnum, Extra: &types.Enum{Name: "Color", Underlying: reg.Int}}
	assert.Panics(t, func() { check.DefaultFor(reg, en, ast.Location{}) })
}
