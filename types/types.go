// Package types captures everything the checker needs to know about an
// expression's or declaration's type. A Type is a tagged variant: exactly one
// of the kind-specific fields below is meaningful for a given Kind, mirroring
// how the teacher's types package keeps one flat struct plus an ExtraType
// interface for the kinds that need more than a few scalars.
package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindNumber Kind = iota
	KindLiteral
	KindPointer
	KindArray
	KindStruct
	KindEnum
	KindLambda
	KindIdent
	KindStructCall
)

var kindnames = [...]string{
	"number",
	"literal",
	"pointer",
	"array",
	"struct",
	"enum",
	"lambda",
	"ident",
	"struct-call",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindnames) {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindnames[k]
}

type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralBool
	LiteralNull
	LiteralVoid
	LiteralType
)

var literalnames = [...]string{"string", "bool", "null", "void", "Type"}

func (l LiteralKind) String() string {
	if int(l) < 0 || int(l) >= len(literalnames) {
		return fmt.Sprintf("literal(%d)", l)
	}
	return literalnames[l]
}

type ArrayKind int

const (
	ArrayFixed ArrayKind = iota
	ArraySlice
	ArrayDynamic
)

var arraykindnames = [...]string{"fixed", "slice", "dynamic"}

func (a ArrayKind) String() string {
	if int(a) < 0 || int(a) >= len(arraykindnames) {
		return fmt.Sprintf("arraykind(%d)", a)
	}
	return arraykindnames[a]
}

// NumberInfo is valid when Type.Kind == KindNumber. Low and High are the raw
// bit patterns of the smallest/largest representable value for a builtin
// integer type -- reinterpreted as signed or unsigned per Signed, exactly as
// the source's "signed long" vs. "unsigned long" casts of the same
// literal_low/literal_high nodes. Floating-point types leave Low/High zero;
// range-checking only applies to integers.
type NumberInfo struct {
	Signed  bool
	Float   bool
	Float64 bool
	Low     uint64
	High    uint64
}

// SignedRange reinterprets Low/High as a two's-complement range.
func (n NumberInfo) SignedRange() (low, high int64) {
	return int64(n.Low), int64(n.High)
}

// UnsignedRange reinterprets Low/High as an unsigned range.
func (n NumberInfo) UnsignedRange() (low, high uint64) {
	return n.Low, n.High
}

// ArrayInfo is valid when Type.Kind == KindArray.
type ArrayInfo struct {
	Kind    ArrayKind
	Length  int64 // only meaningful for ArrayFixed
	Element *Type
}

// ExtraType is the payload for the kinds that need more than a few scalars:
// Struct, Enum, Lambda, and Ident. Mirrors the teacher's ExtraType/IsExtra
// split for Struct/Function/StructForward.
type ExtraType interface {
	IsExtra()
}

// Struct is nominal: two Struct types are equal only if they are the same
// *Type pointer (see Equal). Block is an opaque handle to the AST block that
// declares the struct's fields (an *ast.Block in practice) -- types does not
// import ast, so field lookups by name go through
// workspace.Scope.FindDeclarationInBlock, which knows how to type-assert it
// back.
type Struct struct {
	Name       string
	Block      any
	FieldTypes []*Type
	FieldCount int
}

func (*Struct) IsExtra() {}

// Enum is nominal, same rationale as Struct. Enum value instantiation is
// unimplemented per spec; the shape still exists so declarations can carry
// IS_ENUM_VALUE constants typed against Underlying.
type Enum struct {
	Name       string
	Block      any
	Underlying *Type
}

func (*Enum) IsExtra() {}

type Lambda struct {
	ArgumentTypes []*Type
	ReturnType    *Type
	Variadic      bool
}

func (*Lambda) IsExtra() {}

// Ident is an unresolved reference to a named type, as produced by the
// parser; it is resolved into one of the other shapes during check and
// should never survive to the end of a successful typecheck.
// ResolvedDeclaration is an opaque *ast.Declaration.
type Ident struct {
	Name                string
	ResolvedDeclaration any
}

func (*Ident) IsExtra() {}

// StructCall is reserved and unimplemented (spec.md §4.4, §9).
type StructCall struct{}

func (*StructCall) IsExtra() {}

// Type is the tagged variant described in spec.md §3. Every Type obtained
// from a successful check carries a non-negative Size in bytes.
type Type struct {
	Kind Kind
	Size int64

	Name string // builtin/display name, e.g. "u8"; empty for anonymous compounds

	Number  NumberInfo  // KindNumber
	Literal LiteralKind // KindLiteral
	Pointee *Type       // KindPointer
	Array   ArrayInfo   // KindArray
	Extra   ExtraType   // KindStruct, KindEnum, KindLambda, KindIdent, KindStructCall
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case KindNumber:
		return t.Name
	case KindLiteral:
		return t.Literal.String()
	case KindPointer:
		return "*" + t.Pointee.String()
	case KindArray:
		switch t.Array.Kind {
		case ArrayFixed:
			return fmt.Sprintf("[%d] %s", t.Array.Length, t.Array.Element)
		case ArraySlice:
			return fmt.Sprintf("[] %s", t.Array.Element)
		default:
			return fmt.Sprintf("[..] %s", t.Array.Element)
		}
	case KindStruct:
		s := t.Extra.(*Struct)
		return "struct " + s.Name
	case KindEnum:
		e := t.Extra.(*Enum)
		return "enum " + e.Name
	case KindLambda:
		l := t.Extra.(*Lambda)
		b := &strings.Builder{}
		b.WriteString("(")
		for i, a := range l.ArgumentTypes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		if l.Variadic {
			b.WriteString(", ..")
		}
		b.WriteString(") -> ")
		b.WriteString(l.ReturnType.String())
		return b.String()
	case KindIdent:
		return t.Extra.(*Ident).Name
	default:
		return "<unsupported>"
	}
}

// Equal implements spec.md §4.1: built-in pointer identity, structural
// equality for Pointer/Array/Lambda, and nominal (identity-only) equality
// for everything else -- grounded on the source's types_are_equal and the
// teacher's (*types.Type).Matches.
func Equal(x, y *Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case KindPointer:
		return Equal(x.Pointee, y.Pointee)
	case KindArray:
		if x.Array.Kind != y.Array.Kind {
			return false
		}
		if x.Array.Kind == ArrayFixed && x.Array.Length != y.Array.Length {
			return false
		}
		return Equal(x.Array.Element, y.Array.Element)
	case KindLambda:
		lx := x.Extra.(*Lambda)
		ly := y.Extra.(*Lambda)
		if lx.Variadic != ly.Variadic {
			return false
		}
		if !Equal(lx.ReturnType, ly.ReturnType) {
			return false
		}
		if len(lx.ArgumentTypes) != len(ly.ArgumentTypes) {
			return false
		}
		for i := range lx.ArgumentTypes {
			if !Equal(lx.ArgumentTypes[i], ly.ArgumentTypes[i]) {
				return false
			}
		}
		return true
	default:
		// Struct, Enum, Ident, StructCall, Literal: identity only. Since
		// x != y was already ruled out above, these never match -- nominal
		// types are only ever equal to themselves.
		return false
	}
}

// IsInteger reports whether t is a non-floating-point Number type.
func IsInteger(t *Type) bool {
	return t != nil && t.Kind == KindNumber && !t.Number.Float
}

// IsFloat reports whether t is a floating-point Number type.
func IsFloat(t *Type) bool {
	return t != nil && t.Kind == KindNumber && t.Number.Float
}
