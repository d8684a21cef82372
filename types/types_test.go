package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/susji/jcheck/types"
)

func TestEqualBuiltinIdentity(t *testing.T) {
	reg := types.NewRegistry()
	assert.True(t, types.Equal(reg.Int, reg.Int))
	assert.True(t, types.Equal(reg.U8, reg.U8))
	assert.False(t, types.Equal(reg.Int, reg.U8))
}

func TestEqualNilHandling(t *testing.T) {
	reg := types.NewRegistry()
	assert.False(t, types.Equal(nil, reg.Int))
	assert.False(t, types.Equal(reg.Int, nil))
	assert.True(t, types.Equal(nil, nil))
}

func TestEqualPointerStructural(t *testing.T) {
	reg := types.NewRegistry()
	p1 := &types.Type{Kind: types.KindPointer, Pointee: reg.Int}
	p2 := &types.Type{Kind: types.KindPointer, Pointee: reg.Int}
	p3 := &types.Type{Kind: types.KindPointer, Pointee: reg.U8}
	assert.True(t, types.Equal(p1, p2))
	assert.False(t, types.Equal(p1, p3))
}

func TestEqualArrayStructural(t *testing.T) {
	reg := types.NewRegistry()
	fixed3 := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: 3, Element: reg.Int}}
	fixed3b := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: 3, Element: reg.Int}}
	fixed4 := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: 4, Element: reg.Int}}
	slice := &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArraySlice, Element: reg.Int}}

	assert.True(t, types.Equal(fixed3, fixed3b))
	assert.False(t, types.Equal(fixed3, fixed4))
	assert.False(t, types.Equal(fixed3, slice))
}

func TestEqualStructNominalIdentityOnly(t *testing.T) {
	a := &types.Type{Kind: types.KindStruct, Extra: &types.Struct{Name: "Point"}}
	b := &types.Type{Kind: types.KindStruct, Extra: &types.Struct{Name: "Point"}}
	assert.False(t, types.Equal(a, b), "two distinct Struct Types with the same name must not be Equal")
	assert.True(t, types.Equal(a, a))
}

func TestSignedRangeRoundTrip(t *testing.T) {
	reg := types.NewRegistry()
	low, high := reg.S8.Number.SignedRange()
	assert.Equal(t, int64(-128), low)
	assert.Equal(t, int64(127), high)
}

func TestUnsignedRange(t *testing.T) {
	reg := types.NewRegistry()
	low, high := reg.U8.Number.UnsignedRange()
	assert.Equal(t, uint64(0), low)
	assert.Equal(t, uint64(255), high)
}

func TestWidestIntegerPrefersWidth(t *testing.T) {
	reg := types.NewRegistry()
	assert.Same(t, reg.S32, reg.WidestInteger(reg.S32, reg.U8))
}

func TestWidestIntegerTieBreaksSigned(t *testing.T) {
	reg := types.NewRegistry()
	assert.Same(t, reg.S32, reg.WidestInteger(reg.S32, reg.U32))
	assert.Same(t, reg.S32, reg.WidestInteger(reg.U32, reg.S32))
}

func TestIsIntegerIsFloat(t *testing.T) {
	reg := types.NewRegistry()
	assert.True(t, types.IsInteger(reg.Int))
	assert.False(t, types.IsInteger(reg.Float))
	assert.True(t, types.IsFloat(reg.Float64))
	assert.False(t, types.IsFloat(reg.Bool))
}

func TestLookupBuiltins(t *testing.T) {
	reg := types.NewRegistry()
	assert.Same(t, reg.Bool, reg.Lookup("bool"))
	assert.Same(t, reg.U8, reg.Lookup("u8"))
	assert.Nil(t, reg.Lookup("no_such_type"))
}

// TestSignedIntegerFamilyShapes diffs the s8, s16 and s32 builtins' NumberInfo
// against the shape NewRegistry should produce for a plain two's-complement
// range, one bit width at a time -- cmp.Diff gives a readable field-by-field
// report if any width's Low/High drift, rather than a single opaque
// assert.Equal failure.
func TestSignedIntegerFamilyShapes(t *testing.T) {
	reg := types.NewRegistry()
	cases := []struct {
		name string
		t    *types.Type
		bits int
	}{
		{"s8", reg.S8, 8},
		{"s16", reg.S16, 16},
		{"s32", reg.S32, 32},
	}
	for _, c := range cases {
		high := uint64(1)<<(c.bits-1) - 1
		low := ^high
		want := types.NumberInfo{Signed: true, Low: low, High: high}
		got := c.t.Number
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(types.NumberInfo{}, "Float", "Float64")); diff != "" {
			t.Errorf("%s NumberInfo mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestIsBuiltinInteger(t *testing.T) {
	reg := types.NewRegistry()
	assert.True(t, reg.IsBuiltinInteger("s64"))
	assert.False(t, reg.IsBuiltinInteger("bool"))
	assert.False(t, reg.IsBuiltinInteger("Point"))
}
