package check

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
)

// CheckThatTypesMatch implements C7 (spec.md §4.7): the single place where
// implicit conversions are introduced. slot holds the expression being
// reconciled against expected; on success it may rewrite slot in place
// (Number re-finalization, string->char-code, string->`*u8`, fixed-array->
// slice promotion) and returns nil. On failure it returns the mismatch
// error; slot is left untouched.
func CheckThatTypesMatch(reg *types.Registry, slot ast.Slot, expected *types.Type) *CheckError {
	expr := slot.Get()
	got := expr.InferredType()

	// 1. Already equal.
	if types.Equal(got, expected) {
		return nil
	}

	// 2. A still-polymorphic Number: re-run the Number check against the
	// expected type in place.
	if n, ok := expr.(*ast.Number); ok && !n.InferredTypeIsFinal {
		return CheckNumber(reg, slot, expected)
	}

	// 3. A string Literal coerced to a single-char integer or to *u8.
	if lit, ok := expr.(*ast.Literal); ok && lit.Kind == types.LiteralString {
		if types.IsInteger(expected) && len(lit.Str) == 1 {
			ast.Substitute(slot, ast.NewIntNumber(expr.Loc(), uint64(lit.Str[0]), expected.Number.Signed, expected))
			return nil
		}
		if expected.Kind == types.KindPointer && expected.Pointee != nil && expected.Pointee.Name == "u8" {
			lit.SetInferredType(expected)
			return nil
		}
	}

	// 4. A Fixed array promoted to a Slice of the same element type.
	if got != nil && got.Kind == types.KindArray && got.Array.Kind == types.ArrayFixed &&
		expected.Kind == types.KindArray && expected.Array.Kind == types.ArraySlice &&
		types.Equal(got.Array.Element, expected.Array.Element) {
		ast.Substitute(slot, synthesizeSliceFromFixed(reg, expr, got, expected))
		return nil
	}

	// 5. The untyped `null` literal retyped against a Pointer or Lambda
	// target -- spec.md §3 pairs these kinds with a null default value, so
	// an explicit `p : *int = null;` must coerce the same way the implicit
	// default does.
	if lit, ok := expr.(*ast.Literal); ok && lit.Kind == types.LiteralNull &&
		(expected.Kind == types.KindPointer || expected.Kind == types.KindLambda) {
		lit.SetInferredType(expected)
		return nil
	}

	return errorf(expr.Loc(), ErrKindTypeMismatch, ErrCallArgumentType,
		"expected %s, got %s", expected, got)
}

// synthesizeSliceFromFixed builds `.{ *expr[0], expr_length }` typed as a
// Slice of fixed's element type -- spec.md §4.7 rule 4, the end-to-end
// scenario in spec.md §8 (`a : [3] int = .{1,2,3}; b : [] int = a;`).
func synthesizeSliceFromFixed(reg *types.Registry, expr ast.Expr, fixed, slice *types.Type) ast.Expr {
	loc := expr.Loc()
	ptrType := &types.Type{Kind: types.KindPointer, Pointee: fixed.Array.Element, Size: 8}
	first := ast.NewBinary(loc, ast.BinaryIndex, expr, ast.NewIntNumber(loc, 0, true, reg.Int), fixed.Array.Element)
	addr := &ast.Unary{
		ExprHeader: ast.ExprHeader{Location: loc, Type: ptrType},
		Op:         ast.UnaryAddressOf,
		Sub:        first,
	}
	length := ast.NewIntNumber(loc, uint64(fixed.Array.Length), true, reg.Int)
	typedef := &ast.TypeDefinition{
		ExprHeader: ast.ExprHeader{Location: loc, Type: reg.TypeType},
		Kind:       ast.TypeDefArray,
		ArrayKind:  types.ArraySlice,
		Resolved:   slice,
	}
	return &ast.TypeInstantiation{
		ExprHeader: ast.ExprHeader{Location: loc, Type: slice},
		TypeExpr:   typedef,
		Arguments:  []ast.Expr{addr, length},
	}
}

// AutocastToBool implements C7's autocast_to_bool: it mutates slot in
// place to a bool-typed expression and returns true, or leaves slot
// untouched and returns false ("no conversion available", spec.md §4.7) if
// t cannot be autocast at all (Struct/Enum/Lambda).
func AutocastToBool(reg *types.Registry, slot ast.Slot) bool {
	expr := slot.Get()
	t := expr.InferredType()
	loc := expr.Loc()

	if types.Equal(t, reg.Bool) {
		return true
	}
	if t == nil {
		return false
	}

	switch t.Kind {
	case types.KindLiteral:
		switch t.Literal {
		case types.LiteralNull:
			ast.Substitute(slot, ast.NewBoolLiteral(loc, false, reg.Bool))
			return true
		case types.LiteralString:
			ast.Substitute(slot, countNotZero(reg, expr, 1))
			return true
		}
		return false

	case types.KindArray:
		switch t.Array.Kind {
		case types.ArrayFixed:
			ast.Substitute(slot, ast.NewBoolLiteral(loc, t.Array.Length != 0, reg.Bool))
			return true
		default:
			ast.Substitute(slot, countNotZero(reg, expr, 1))
			return true
		}

	case types.KindNumber, types.KindPointer:
		zero := zeroOf(reg, t, loc)
		ast.Substitute(slot, ast.NewBinary(loc, ast.BinaryNeq, expr, zero, reg.Bool))
		return true

	default:
		return false
	}
}

func countNotZero(reg *types.Registry, expr ast.Expr, fieldIndex int) ast.Expr {
	loc := expr.Loc()
	sel := ast.NewSelector(loc, expr, "count", fieldIndex, reg.Int)
	return ast.NewBinary(loc, ast.BinaryNeq, sel, ast.NewIntNumber(loc, 0, true, reg.Int), reg.Bool)
}

func zeroOf(reg *types.Registry, t *types.Type, loc ast.Location) ast.Expr {
	if t.Kind == types.KindPointer {
		return &ast.Literal{ExprHeader: ast.ExprHeader{Location: loc, Type: t}, Kind: types.LiteralNull}
	}
	if t.Number.Float {
		return ast.NewFloatNumber(loc, 0, t.Number.Float64, t)
	}
	return ast.NewIntNumber(loc, 0, t.Number.Signed, t)
}
