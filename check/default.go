package check

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
)

// DefaultFor builds the default-value expression for t, spec.md §4.3 rule
// 6 and the Type_Instantiation zero-argument case (§4.4): Number gets 0 of
// that type, Literal gets the zero value of its own kind, Pointer/Lambda
// get the null literal, Struct gets an instantiation of each field's
// default, a Fixed array gets an instantiation holding one element default
// per slot, and a Slice or Dynamic array gets an instantiation with no
// arguments. Enum has no
// default per spec.md §9 (instantiation is unimplemented for enums
// entirely) and panics if reached -- callers must not ask for one.
func DefaultFor(reg *types.Registry, t *types.Type, loc ast.Location) ast.Expr {
	switch t.Kind {
	case types.KindNumber:
		if t.Number.Float {
			return ast.NewFloatNumber(loc, 0, t.Number.Float64, t)
		}
		return ast.NewIntNumber(loc, 0, t.Number.Signed, t)

	case types.KindLiteral:
		switch t.Literal {
		case types.LiteralBool:
			return ast.NewBoolLiteral(loc, false, t)
		case types.LiteralString:
			return ast.NewStringLiteral(loc, "", t)
		default:
			return &ast.Literal{ExprHeader: ast.ExprHeader{Location: loc, Type: t}, Kind: types.LiteralNull}
		}

	case types.KindPointer, types.KindLambda:
		return &ast.Literal{ExprHeader: ast.ExprHeader{Location: loc, Type: t}, Kind: types.LiteralNull}

	case types.KindStruct:
		st := t.Extra.(*types.Struct)
		args := make([]ast.Expr, st.FieldCount)
		for i, ft := range st.FieldTypes {
			args[i] = DefaultFor(reg, ft, loc)
		}
		return &ast.TypeInstantiation{
			ExprHeader: ast.ExprHeader{Location: loc, Type: t},
			TypeExpr:   &ast.TypeDefinition{ExprHeader: ast.ExprHeader{Location: loc, Type: reg.TypeType}, Kind: ast.TypeDefStruct, Block: structBlock(st), Resolved: t},
			Arguments:  args,
		}

	case types.KindArray:
		var size int
		if t.Array.Kind == types.ArrayFixed {
			size = int(t.Array.Length)
		}
		args := make([]ast.Expr, 0, size)
		for i := 0; i < size; i++ {
			args = append(args, DefaultFor(reg, t.Array.Element, loc))
		}
		return &ast.TypeInstantiation{
			ExprHeader: ast.ExprHeader{Location: loc, Type: t},
			TypeExpr:   &ast.TypeDefinition{ExprHeader: ast.ExprHeader{Location: loc, Type: reg.TypeType}, Kind: ast.TypeDefArray, ArrayKind: t.Array.Kind, Resolved: t},
			Arguments:  args,
		}

	default:
		panic("check: no default value for " + t.String())
	}
}

func structBlock(st *types.Struct) *ast.Block {
	blk, _ := st.Block.(*ast.Block)
	return blk
}
