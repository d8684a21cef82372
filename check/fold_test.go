package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/check"
	"github.com/susji/jcheck/types"
)

func numInt(v uint64, signed bool) *ast.Number {
	return &ast.Number{Integer: v, Signed: signed}
}

func TestFoldUnsignedArith(t *testing.T) {
	reg := types.NewRegistry()
	result, err := check.Fold(reg, ast.BinaryAdd, numInt(3, false), numInt(4, false), ast.Location{})
	require.Nil(t, err)
	n := result.(*ast.Number)
	assert.Equal(t, uint64(7), n.Integer)
	assert.False(t, n.InferredTypeIsFinal, "fold results stay open to C7 re-finalization")
}

func TestFoldSignedArith(t *testing.T) {
	reg := types.NewRegistry()
	result, err := check.Fold(reg, ast.BinarySub, numInt(3, true), numInt(9, true), ast.Location{})
	require.Nil(t, err)
	n := result.(*ast.Number)
	assert.Equal(t, int64(-6), int64(n.Integer))
}

func TestFoldComparisonProducesBool(t *testing.T) {
	reg := types.NewRegistry()
	result, err := check.Fold(reg, ast.BinaryLt, numInt(3, true), numInt(9, true), ast.Location{})
	require.Nil(t, err)
	lit := result.(*ast.Literal)
	assert.Equal(t, types.LiteralBool, lit.Kind)
	assert.True(t, lit.Bool)
}

// TestFoldSignedRightShiftBug reproduces spec.md §9's open question #1
// verbatim: when both operands of `>>` are individually signed, the
// original implementation folds it as `<<` instead. DESIGN.md records the
// decision to keep this rather than "fix" it.
func TestFoldSignedRightShiftBug(t *testing.T) {
	reg := types.NewRegistry()
	result, err := check.Fold(reg, ast.BinaryShr, numInt(1, true), numInt(2, true), ast.Location{})
	require.Nil(t, err)
	n := result.(*ast.Number)
	assert.Equal(t, uint64(1<<2), n.Integer, "both operands signed: reproduces the source's l<<r bug")
}

func TestFoldRightShiftUnsignedOperandIsCorrect(t *testing.T) {
	reg := types.NewRegistry()
	result, err := check.Fold(reg, ast.BinaryShr, numInt(8, true), numInt(2, false), ast.Location{})
	require.Nil(t, err)
	n := result.(*ast.Number)
	assert.Equal(t, uint64(8>>2), n.Integer, "one operand unsigned: real right shift, no bug")
}

func TestFoldFloatRejectsBitwise(t *testing.T) {
	reg := types.NewRegistry()
	left := &ast.Number{IsFloat: true, Real: 1.5}
	right := &ast.Number{Integer: 2}
	_, err := check.Fold(reg, ast.BinaryBitAnd, left, right, ast.Location{})
	require.NotNil(t, err)
	assert.Equal(t, check.ErrKindShape, err.Kind)
}

func TestFoldFloatArith(t *testing.T) {
	reg := types.NewRegistry()
	left := &ast.Number{IsFloat: true, Real: 1.5}
	right := &ast.Number{IsFloat: true, Real: 2.5}
	result, err := check.Fold(reg, ast.BinaryAdd, left, right, ast.Location{})
	require.Nil(t, err)
	n := result.(*ast.Number)
	assert.Equal(t, 4.0, n.Real)
}

func TestFoldNegatePreservesFinality(t *testing.T) {
	n := ast.NewIntNumber(ast.Location{}, 5, true, nil)
	r := check.FoldNegate(n)
	assert.Equal(t, int64(-5), int64(r.Integer))
	assert.True(t, r.InferredTypeIsFinal)

	open := ast.NewComptimeIntNumber(ast.Location{}, 5, true, nil)
	r2 := check.FoldNegate(open)
	assert.False(t, r2.InferredTypeIsFinal)
}

func TestFoldBitwiseNot(t *testing.T) {
	n := ast.NewComptimeIntNumber(ast.Location{}, 0, false, nil)
	r := check.FoldBitwiseNot(n)
	assert.Equal(t, ^uint64(0), r.Integer)
}
