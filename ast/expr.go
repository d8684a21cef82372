package ast

import (
	"fmt"
	"strings"

	"github.com/susji/jcheck/types"
)

// Expr is the tagged union of expression node kinds from spec.md §3: Number,
// Literal, Ident, Unary, Binary, Procedure, Procedure_Call, Type_Definition,
// Cast, Selector, Type_Instantiation. Every kind embeds ExprHeader, mirroring
// the teacher's Common-embedding-per-node style in node/node.go.
type Expr interface {
	Loc() Location
	InferredType() *types.Type
	SetInferredType(*types.Type)
	String() string
	exprNode()
}

// ExprHeader is the shared header every Expr kind embeds: source location
// plus the slot the checker fills in once the expression is typechecked.
type ExprHeader struct {
	Location Location
	Type     *types.Type
}

func (h *ExprHeader) Loc() Location                  { return h.Location }
func (h *ExprHeader) InferredType() *types.Type       { return h.Type }
func (h *ExprHeader) SetInferredType(t *types.Type)   { h.Type = t }
func (h *ExprHeader) exprNode()                       {}

// --- Number -----------------------------------------------------------

// Number is an integer or floating-point literal. Exactly one of Integer or
// Real is meaningful, selected by IsFloat -- mirroring the source's
// as.integer/as.real union on Ast_Number. InferredTypeIsFinal marks a
// literal whose type has already been pinned to a concrete (non-comptime)
// type by an enclosing context and must not be re-finalized (spec.md §4.3
// rule 5).
type Number struct {
	ExprHeader
	Integer             uint64
	Real                float64
	IsFloat             bool
	Float64             bool
	Signed              bool
	InferredTypeIsFinal bool
}

func (n *Number) String() string {
	if n.IsFloat {
		return fmt.Sprintf("(number %g)", n.Real)
	}
	return fmt.Sprintf("(number %d)", n.Integer)
}

// --- Literal ------------------------------------------------------------

// Literal is a string, bool, null, or void constant. Str and Bool are only
// meaningful for the matching Kind.
type Literal struct {
	ExprHeader
	Kind types.LiteralKind
	Str  string
	Bool bool
}

func (l *Literal) String() string {
	switch l.Kind {
	case types.LiteralString:
		return fmt.Sprintf("(literal-string %q)", l.Str)
	case types.LiteralBool:
		return fmt.Sprintf("(literal-bool %v)", l.Bool)
	case types.LiteralNull:
		return "(literal-null)"
	default:
		return "(literal-void)"
	}
}

// --- Ident ----------------------------------------------------------------

// Ident is a bare identifier reference, resolved during check against the
// enclosing workspace.Scope chain rooted at EnclosingBlock.
type Ident struct {
	ExprHeader
	Name                string
	EnclosingBlock      *Block
	ResolvedDeclaration *Declaration
}

func (i *Ident) String() string {
	return fmt.Sprintf("(ident %q)", i.Name)
}

// --- Unary ------------------------------------------------------------

type UnaryOp int

const (
	UnaryNegate UnaryOp = iota
	UnaryNot
	UnaryBitwiseNot
	UnaryAddressOf
	UnaryDereference
)

var unarynames = [...]string{"-", "!", "~", "*", "<<deref>>"}

func (o UnaryOp) String() string {
	if int(o) < 0 || int(o) >= len(unarynames) {
		return fmt.Sprintf("unaryop(%d)", o)
	}
	return unarynames[o]
}

type Unary struct {
	ExprHeader
	Op  UnaryOp
	Sub Expr
}

func (u *Unary) String() string {
	return fmt.Sprintf("(unary %s %s)", u.Op, u.Sub)
}

// --- Binary -----------------------------------------------------------

type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryEq
	BinaryNeq
	BinaryLt
	BinaryLte
	BinaryGt
	BinaryGte
	BinaryAnd
	BinaryOr
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
	BinaryShl
	BinaryShr
	BinaryIndex
	BinaryRange
)

var binarynames = [...]string{
	"+", "-", "*", "/", "%",
	"==", "!=", "<", "<=", ">", ">=",
	"&&", "||",
	"&", "|", "^", "<<", ">>",
	"[]", "..",
}

func (o BinaryOp) String() string {
	if int(o) < 0 || int(o) >= len(binarynames) {
		return fmt.Sprintf("binaryop(%d)", o)
	}
	return binarynames[o]
}

// IsComparison reports whether o produces a bool per spec.md §4.4's
// comparison contract.
func (o BinaryOp) IsComparison() bool {
	switch o {
	case BinaryEq, BinaryNeq, BinaryLt, BinaryLte, BinaryGt, BinaryGte:
		return true
	}
	return false
}

// IsLogical reports whether o is && or ||, which autocast both operands to
// bool rather than unifying their numeric types (spec.md §4.4, §9).
func (o BinaryOp) IsLogical() bool {
	return o == BinaryAnd || o == BinaryOr
}

// IsBitwise reports whether o requires integer (non-float) operands.
func (o BinaryOp) IsBitwise() bool {
	switch o {
	case BinaryBitAnd, BinaryBitOr, BinaryBitXor, BinaryShl, BinaryShr:
		return true
	}
	return false
}

type Binary struct {
	ExprHeader
	Op          BinaryOp
	Left, Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(binary %s %s %s)", b.Op, b.Left, b.Right)
}

// --- Procedure ----------------------------------------------------------

// Procedure is a procedure literal/definition: its LambdaType is the
// Type_Definition describing the argument/return types. ArgumentsBlock holds
// the argument declarations as their own lexical block (so the body can
// resolve parameter names before the rest of the body is flattened); Body
// is nil for a foreign declaration (ForeignLibraryName set), present
// otherwise.
type Procedure struct {
	ExprHeader
	LambdaType         *TypeDefinition
	ArgumentsBlock     *Block
	Body               *Block
	ForeignLibraryName *Ident
}

func (p *Procedure) IsForeign() bool { return p.ForeignLibraryName != nil }

func (p *Procedure) String() string {
	if p.IsForeign() {
		return fmt.Sprintf("(procedure %s foreign %s)", p.LambdaType, p.ForeignLibraryName)
	}
	return fmt.Sprintf("(procedure %s %s)", p.LambdaType, p.Body)
}

// --- ProcedureCall ------------------------------------------------------

type ProcedureCall struct {
	ExprHeader
	Procedure Expr
	Arguments []Expr
}

func (c *ProcedureCall) String() string {
	b := &strings.Builder{}
	b.WriteString(fmt.Sprintf("(call %s", c.Procedure))
	for _, a := range c.Arguments {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

// --- Type_Definition ------------------------------------------------------

type TypeDefKind int

const (
	TypeDefIdent TypeDefKind = iota
	TypeDefPointer
	TypeDefArray
	TypeDefStruct
	TypeDefEnum
	TypeDefLambda
)

// TypeDefinition is an expression whose runtime value denotes a type
// (spec.md §4.4). Resolved is filled in by check once the Type_Definition
// has been typechecked; InferredType() is always the registry's TypeType
// meta-type.
type TypeDefinition struct {
	ExprHeader

	Kind TypeDefKind

	// TypeDefIdent: Name is the bare type name to resolve, EnclosingBlock
	// is where to start the outward scope walk (set by the parser/fixture
	// builder, mirroring Ident.EnclosingBlock -- there is no sub-expression
	// to flatten here, so nothing downstream of construction needs to set
	// it).
	Name           string
	EnclosingBlock *Block

	// TypeDefPointer, TypeDefArray (element)
	Pointee Expr // *TypeDefinition of the pointee

	// TypeDefArray
	ArrayKind   types.ArrayKind
	ArrayLength Expr // only for fixed arrays; nil otherwise
	Element     Expr // *TypeDefinition of the element

	// TypeDefStruct, TypeDefEnum
	Block *Block

	// TypeDefLambda
	ArgumentTypes []Expr // []*TypeDefinition
	ReturnType    Expr   // *TypeDefinition
	Variadic      bool

	Resolved *types.Type
}

func (t *TypeDefinition) String() string {
	switch t.Kind {
	case TypeDefIdent:
		return fmt.Sprintf("(type-def-ident %q)", t.Name)
	case TypeDefPointer:
		return fmt.Sprintf("(type-def-pointer %s)", t.Pointee)
	case TypeDefArray:
		return fmt.Sprintf("(type-def-array %s %s)", t.ArrayKind, t.Element)
	case TypeDefStruct:
		return "(type-def-struct)"
	case TypeDefEnum:
		return "(type-def-enum)"
	default:
		return "(type-def-lambda)"
	}
}

// --- Cast -----------------------------------------------------------------

// Cast is an explicit `cast(T) e` or `cast,force(T) e` expression. ValueCast
// marks a bit-reinterpreting value cast, which the checker accepts only
// between a source and target of the same type kind.
type Cast struct {
	ExprHeader
	Type      *TypeDefinition
	Sub       Expr
	ValueCast bool
}

func (c *Cast) String() string {
	return fmt.Sprintf("(cast %s %s)", c.Type, c.Sub)
}

// --- Selector ---------------------------------------------------------

// Selector is `namespace.ident`: struct field access, or (unimplemented,
// spec.md §9) access through an imported namespace.
type Selector struct {
	ExprHeader
	Namespace        Expr
	Name             string
	NameLocation     Location
	StructFieldIndex int
}

func (s *Selector) String() string {
	return fmt.Sprintf("(selector %s %q)", s.Namespace, s.Name)
}

// --- Type_Instantiation -------------------------------------------------

// TypeInstantiation is `T.{...}` construction (spec.md §4.4): zero arguments
// default-initializes, otherwise each argument is checked against the
// target type's element/field/pointee shape. check.checkTypeInstantiation
// implements every target Kind except the ones still unimplemented per
// spec.md §9 (StructCall types, enum instantiation), which report the
// "Unimplemented" error kind instead of crashing on an unhandled case.
type TypeInstantiation struct {
	ExprHeader
	TypeExpr  *TypeDefinition
	Arguments []Expr
}

func (t *TypeInstantiation) String() string {
	return fmt.Sprintf("(type-instantiation %s)", t.TypeExpr)
}
