package ast

import "github.com/susji/jcheck/types"

// The constructors below synthesize new nodes the checker substitutes in
// place of an existing one -- constant folding results, implicit
// array-to-slice promotions, finalized comptime literals -- mirroring the
// teacher's make_pointer_type/make_literal/make_boolean helpers. Every
// synthesized node carries the location of the node it replaces so
// diagnostics pointing at the substituted node still land on real source
// text.

// NewIntNumber builds a finalized integer Number at loc with the given
// signedness, typed t. Used where the result is pinned to a concrete type
// immediately and can never be re-finalized (e.g. C7's string-literal
// character-code substitution).
func NewIntNumber(loc Location, value uint64, signed bool, t *types.Type) *Number {
	n := &Number{
		ExprHeader:          ExprHeader{Location: loc, Type: t},
		Integer:             value,
		Signed:              signed,
		InferredTypeIsFinal: true,
	}
	return n
}

// NewComptimeIntNumber builds a not-yet-final integer Number, the shape a
// folded constant-arithmetic result takes (spec.md §4.6): it already has a
// default inferred_type so the driver can advance, but remains open to
// re-finalization via C7 rule 2 if an enclosing context supplies a
// different expected type.
func NewComptimeIntNumber(loc Location, value uint64, signed bool, t *types.Type) *Number {
	return &Number{
		ExprHeader: ExprHeader{Location: loc, Type: t},
		Integer:    value,
		Signed:     signed,
	}
}

// NewComptimeFloatNumber is NewComptimeIntNumber's floating-point
// counterpart.
func NewComptimeFloatNumber(loc Location, value float64, is64 bool, t *types.Type) *Number {
	return &Number{
		ExprHeader: ExprHeader{Location: loc, Type: t},
		Real:       value,
		IsFloat:    true,
		Float64:    is64,
	}
}

// NewFloatNumber builds a finalized floating-point Number at loc.
func NewFloatNumber(loc Location, value float64, is64 bool, t *types.Type) *Number {
	return &Number{
		ExprHeader:          ExprHeader{Location: loc, Type: t},
		Real:                value,
		IsFloat:             true,
		Float64:             is64,
		InferredTypeIsFinal: true,
	}
}

// NewBoolLiteral builds a finalized bool Literal at loc.
func NewBoolLiteral(loc Location, value bool, t *types.Type) *Literal {
	return &Literal{
		ExprHeader: ExprHeader{Location: loc, Type: t},
		Kind:       types.LiteralBool,
		Bool:       value,
	}
}

// NewStringLiteral builds a finalized string Literal at loc.
func NewStringLiteral(loc Location, value string, t *types.Type) *Literal {
	return &Literal{
		ExprHeader: ExprHeader{Location: loc, Type: t},
		Kind:       types.LiteralString,
		Str:        value,
	}
}

// NewBinary builds a Binary node already typed t -- used when a coercion
// inserts a synthetic comparison/operation the source expression didn't
// literally contain.
func NewBinary(loc Location, op BinaryOp, left, right Expr, t *types.Type) *Binary {
	return &Binary{
		ExprHeader: ExprHeader{Location: loc, Type: t},
		Op:         op,
		Left:       left,
		Right:      right,
	}
}

// NewSelector builds a Selector node referencing a resolved field by index,
// used when the checker needs to manufacture a field access (e.g. C7's
// autocast of a string or non-fixed array to bool synthesizing its
// `.count != 0` comparison).
func NewSelector(loc Location, namespace Expr, name string, fieldIndex int, t *types.Type) *Selector {
	return &Selector{
		ExprHeader:       ExprHeader{Location: loc, Type: t},
		Namespace:        namespace,
		Name:             name,
		StructFieldIndex: fieldIndex,
	}
}

// NewPointerTypeDefinition builds a Type_Definition describing `*pointee`,
// already resolved, mirroring make_pointer_type.
func NewPointerTypeDefinition(loc Location, pointee Expr, resolved *types.Type) *TypeDefinition {
	return &TypeDefinition{
		ExprHeader: ExprHeader{Location: loc},
		Kind:       TypeDefPointer,
		Pointee:    pointee,
		Resolved:   resolved,
	}
}

// NewIdentTypeDefinition builds an unresolved Type_Definition naming a type
// by identifier, as the parser would for a bare type name.
func NewIdentTypeDefinition(loc Location, name string) *TypeDefinition {
	return &TypeDefinition{
		ExprHeader: ExprHeader{Location: loc},
		Kind:       TypeDefIdent,
		Name:       name,
	}
}
