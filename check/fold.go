package check

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
)

// Fold implements spec.md §4.6's constant-folding promotion ladder for a
// binary operator over two already-typechecked Number literals. It never
// returns a park signal -- folding only ever runs once both operands are
// already Numbers, which are always self-contained leaves (spec.md §4.2).
//
// The result is itself a fresh, non-final Number (or, for
// comparisons, a bool Literal): it still carries the ordinary "no
// supplied_type" default (int/float/float64) so the driver sees a non-nil
// inferred_type and can advance, but remains open to re-finalization via
// C7 if an enclosing context supplies a different expected type.
func Fold(reg *types.Registry, op ast.BinaryOp, left, right *ast.Number, loc ast.Location) (ast.Expr, *CheckError) {
	floatResult := left.IsFloat || right.IsFloat
	float64Result := left.Float64 || right.Float64
	signedResult := left.Signed || right.Signed

	if floatResult {
		if op.IsBitwise() {
			return nil, errorf(loc, ErrKindShape, ErrBinaryBitwiseOnFloat, "")
		}
		return foldFloat(reg, op, asFloat(left), asFloat(right), float64Result, loc)
	}
	if signedResult {
		return foldSigned(reg, op, int64(left.Integer), int64(right.Integer),
			left.Signed, right.Signed, loc)
	}
	return foldUnsigned(reg, op, left.Integer, right.Integer, loc)
}

func asFloat(n *ast.Number) float64 {
	if n.IsFloat {
		return n.Real
	}
	if n.Signed {
		return float64(int64(n.Integer))
	}
	return float64(n.Integer)
}

func foldFloat(reg *types.Registry, op ast.BinaryOp, l, r float64, is64 bool, loc ast.Location) (ast.Expr, *CheckError) {
	t := reg.Float
	if is64 {
		t = reg.Float64
	}
	switch op {
	case ast.BinaryAdd:
		return ast.NewComptimeFloatNumber(loc, l+r, is64, t), nil
	case ast.BinarySub:
		return ast.NewComptimeFloatNumber(loc, l-r, is64, t), nil
	case ast.BinaryMul:
		return ast.NewComptimeFloatNumber(loc, l*r, is64, t), nil
	case ast.BinaryDiv:
		return ast.NewComptimeFloatNumber(loc, l/r, is64, t), nil
	case ast.BinaryEq:
		return ast.NewBoolLiteral(loc, l == r, reg.Bool), nil
	case ast.BinaryNeq:
		return ast.NewBoolLiteral(loc, l != r, reg.Bool), nil
	case ast.BinaryLt:
		return ast.NewBoolLiteral(loc, l < r, reg.Bool), nil
	case ast.BinaryLte:
		return ast.NewBoolLiteral(loc, l <= r, reg.Bool), nil
	case ast.BinaryGt:
		return ast.NewBoolLiteral(loc, l > r, reg.Bool), nil
	case ast.BinaryGte:
		return ast.NewBoolLiteral(loc, l >= r, reg.Bool), nil
	default:
		return nil, errorf(loc, ErrKindShape, ErrBinaryArithNonNumber, "")
	}
}

func foldSigned(reg *types.Registry, op ast.BinaryOp, l, r int64, lsigned, rsigned bool, loc ast.Location) (ast.Expr, *CheckError) {
	switch op {
	case ast.BinaryAdd:
		return signedResultNumber(reg, loc, l+r), nil
	case ast.BinarySub:
		return signedResultNumber(reg, loc, l-r), nil
	case ast.BinaryMul:
		return signedResultNumber(reg, loc, l*r), nil
	case ast.BinaryDiv:
		return signedResultNumber(reg, loc, l/r), nil
	case ast.BinaryMod:
		return signedResultNumber(reg, loc, l%r), nil
	case ast.BinaryBitAnd:
		return signedResultNumber(reg, loc, l&r), nil
	case ast.BinaryBitOr:
		return signedResultNumber(reg, loc, l|r), nil
	case ast.BinaryBitXor:
		return signedResultNumber(reg, loc, l^r), nil
	case ast.BinaryShl:
		return signedResultNumber(reg, loc, l<<uint64(r)), nil
	case ast.BinaryShr:
		if lsigned && rsigned {
			// Open question #1 (spec.md §9): the source's signed right
			// shift produces l << r at compile time. Reproduced as-is,
			// not "fixed" -- see DESIGN.md.
			return signedResultNumber(reg, loc, l<<uint64(r)), nil
		}
		return signedResultNumber(reg, loc, l>>uint64(r)), nil
	case ast.BinaryEq:
		return ast.NewBoolLiteral(loc, l == r, reg.Bool), nil
	case ast.BinaryNeq:
		return ast.NewBoolLiteral(loc, l != r, reg.Bool), nil
	case ast.BinaryLt:
		return ast.NewBoolLiteral(loc, l < r, reg.Bool), nil
	case ast.BinaryLte:
		return ast.NewBoolLiteral(loc, l <= r, reg.Bool), nil
	case ast.BinaryGt:
		return ast.NewBoolLiteral(loc, l > r, reg.Bool), nil
	case ast.BinaryGte:
		return ast.NewBoolLiteral(loc, l >= r, reg.Bool), nil
	default:
		return nil, errorf(loc, ErrKindShape, ErrBinaryArithNonNumber, "")
	}
}

func foldUnsigned(reg *types.Registry, op ast.BinaryOp, l, r uint64, loc ast.Location) (ast.Expr, *CheckError) {
	switch op {
	case ast.BinaryAdd:
		return unsignedResultNumber(reg, loc, l+r), nil
	case ast.BinarySub:
		return unsignedResultNumber(reg, loc, l-r), nil
	case ast.BinaryMul:
		return unsignedResultNumber(reg, loc, l*r), nil
	case ast.BinaryDiv:
		return unsignedResultNumber(reg, loc, l/r), nil
	case ast.BinaryMod:
		return unsignedResultNumber(reg, loc, l%r), nil
	case ast.BinaryBitAnd:
		return unsignedResultNumber(reg, loc, l&r), nil
	case ast.BinaryBitOr:
		return unsignedResultNumber(reg, loc, l|r), nil
	case ast.BinaryBitXor:
		return unsignedResultNumber(reg, loc, l^r), nil
	case ast.BinaryShl:
		return unsignedResultNumber(reg, loc, l<<r), nil
	case ast.BinaryShr:
		return unsignedResultNumber(reg, loc, l>>r), nil
	case ast.BinaryEq:
		return ast.NewBoolLiteral(loc, l == r, reg.Bool), nil
	case ast.BinaryNeq:
		return ast.NewBoolLiteral(loc, l != r, reg.Bool), nil
	case ast.BinaryLt:
		return ast.NewBoolLiteral(loc, l < r, reg.Bool), nil
	case ast.BinaryLte:
		return ast.NewBoolLiteral(loc, l <= r, reg.Bool), nil
	case ast.BinaryGt:
		return ast.NewBoolLiteral(loc, l > r, reg.Bool), nil
	case ast.BinaryGte:
		return ast.NewBoolLiteral(loc, l >= r, reg.Bool), nil
	default:
		return nil, errorf(loc, ErrKindShape, ErrBinaryArithNonNumber, "")
	}
}

// FoldNegate implements unary `-` constant folding: negate in place,
// preserving the operand's current finality so a still-polymorphic operand
// stays open to C7 re-finalization and an already-pinned one stays pinned.
func FoldNegate(n *ast.Number) *ast.Number {
	var r *ast.Number
	if n.IsFloat {
		r = ast.NewComptimeFloatNumber(n.Loc(), -n.Real, n.Float64, n.InferredType())
	} else {
		r = ast.NewComptimeIntNumber(n.Loc(), uint64(-int64(n.Integer)), true, n.InferredType())
	}
	r.InferredTypeIsFinal = n.InferredTypeIsFinal
	return r
}

// FoldBitwiseNot implements unary `~` constant folding.
func FoldBitwiseNot(n *ast.Number) *ast.Number {
	r := ast.NewComptimeIntNumber(n.Loc(), ^n.Integer, n.Signed, n.InferredType())
	r.InferredTypeIsFinal = n.InferredTypeIsFinal
	return r
}

func signedResultNumber(reg *types.Registry, loc ast.Location, v int64) *ast.Number {
	return ast.NewComptimeIntNumber(loc, uint64(v), true, reg.Int)
}

func unsignedResultNumber(reg *types.Registry, loc ast.Location, v uint64) *ast.Number {
	return ast.NewComptimeIntNumber(loc, v, false, reg.Int)
}
