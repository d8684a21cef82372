package check

import "github.com/susji/jcheck/ast"

// IsLvalue implements spec.md §4.8: an expression is an lvalue iff it is a
// non-constant Ident; a Selector whose namespace is an lvalue; a
// pointer-dereference Unary whose sub is an lvalue; or an array-subscript
// Binary whose left is an lvalue. Everything else is an rvalue.
func IsLvalue(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		if x.ResolvedDeclaration == nil {
			return false
		}
		return !x.ResolvedDeclaration.Flags.Has(ast.FlagConstant)
	case *ast.Selector:
		return IsLvalue(x.Namespace)
	case *ast.Unary:
		return x.Op == ast.UnaryDereference && IsLvalue(x.Sub)
	case *ast.Binary:
		return x.Op == ast.BinaryIndex && IsLvalue(x.Left)
	default:
		return false
	}
}
