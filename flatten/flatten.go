// Package flatten walks a declaration's expression/statement tree and emits
// the linear, post-order work list the declaration driver (check.Run)
// consumes. Grounded in the teacher's recursive-descent-with-accumulator
// style for building linear structures out of a tree (cfg/form.go's `form`
// function appends into a slice as it recurses) and node.Walk's
// switch-on-kind dispatch.
package flatten

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
)

// Flatten walks decl's type and value trees and returns the post-order work
// list: every child expression slot or sub-statement appears before the
// parent that contains it, per spec.md §4.2. Flatten must be called exactly
// once per declaration; check.Run caches the result on decl.Flattened.
func Flatten(decl *ast.Declaration) []ast.WorkItem {
	f := &flattener{}
	if decl.Type != nil {
		f.walkTypeDefinition(func() ast.Expr { return decl.Type }, func(e ast.Expr) {
			if td, ok := e.(*ast.TypeDefinition); ok {
				decl.Type = td
			}
		})
	}
	if decl.Value != nil {
		f.walkExpr(ast.SlotOf(func() ast.Expr { return decl.Value }, func(e ast.Expr) { decl.Value = e }))
	}
	return f.items
}

type flattener struct {
	items []ast.WorkItem
}

func (f *flattener) emitExpr(slot ast.Slot) {
	f.items = append(f.items, ast.ExprWork(slot))
}

func (f *flattener) emitStmt(s ast.Statement) {
	f.items = append(f.items, ast.StmtWork(s))
}

// walkExpr dispatches on the current kind held in slot and recurses into
// children before emitting the work item for slot itself -- every kind,
// leaf or composite, ends by emitting itself; only the set of children
// visited first differs.
func (f *flattener) walkExpr(slot ast.Slot) {
	switch e := slot.Get().(type) {
	case *ast.Number, *ast.Literal, *ast.Ident:
		// self only

	case *ast.Unary:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Sub }, func(x ast.Expr) { e.Sub = x }))

	case *ast.Binary:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Left }, func(x ast.Expr) { e.Left = x }))
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Right }, func(x ast.Expr) { e.Right = x }))

	case *ast.Cast:
		f.walkTypeDefinition(func() ast.Expr { return e.Type }, func(x ast.Expr) {
			if td, ok := x.(*ast.TypeDefinition); ok {
				e.Type = td
			}
		})
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Sub }, func(x ast.Expr) { e.Sub = x }))

	case *ast.Selector:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Namespace }, func(x ast.Expr) { e.Namespace = x }))

	case *ast.ProcedureCall:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return e.Procedure }, func(x ast.Expr) { e.Procedure = x }))
		for i := range e.Arguments {
			i := i
			f.walkExpr(ast.SlotOf(
				func() ast.Expr { return e.Arguments[i] },
				func(x ast.Expr) { e.Arguments[i] = x }))
		}

	case *ast.TypeInstantiation:
		f.walkTypeDefinition(func() ast.Expr { return e.TypeExpr }, func(x ast.Expr) {
			if td, ok := x.(*ast.TypeDefinition); ok {
				e.TypeExpr = td
			}
		})
		for i := range e.Arguments {
			i := i
			f.walkExpr(ast.SlotOf(
				func() ast.Expr { return e.Arguments[i] },
				func(x ast.Expr) { e.Arguments[i] = x }))
		}

	case *ast.Procedure:
		f.walkTypeDefinition(func() ast.Expr { return e.LambdaType }, func(x ast.Expr) {
			if td, ok := x.(*ast.TypeDefinition); ok {
				e.LambdaType = td
			}
		})
		if e.ArgumentsBlock != nil {
			f.walkBlock(e.ArgumentsBlock)
		}
		if e.Body != nil {
			f.walkBlock(e.Body)
		}
		if e.ForeignLibraryName != nil {
			f.walkExpr(ast.SlotOf(
				func() ast.Expr { return ast.Expr(e.ForeignLibraryName) },
				func(x ast.Expr) { e.ForeignLibraryName = x.(*ast.Ident) }))
		}

	case *ast.TypeDefinition:
		f.walkTypeDefinition(slot.Get, slot.Set)
		return // walkTypeDefinition already emits self via the shared tail

	default:
		panic("flatten: unhandled expression kind")
	}
	f.emitExpr(slot)
}

// walkTypeDefinition handles the Type_Definition variant dispatch of
// spec.md §4.2 separately, since it recurses on its own kind tag rather
// than Expr's.
func (f *flattener) walkTypeDefinition(get func() ast.Expr, set func(ast.Expr)) {
	td, ok := get().(*ast.TypeDefinition)
	if !ok || td == nil {
		return
	}
	switch td.Kind {
	case ast.TypeDefPointer:
		if td.Pointee != nil {
			f.walkTypeDefinition(func() ast.Expr { return td.Pointee }, func(x ast.Expr) { td.Pointee = x })
		}
	case ast.TypeDefArray:
		if td.Element != nil {
			f.walkTypeDefinition(func() ast.Expr { return td.Element }, func(x ast.Expr) { td.Element = x })
		}
		if td.ArrayLength != nil {
			f.walkExpr(ast.SlotOf(func() ast.Expr { return td.ArrayLength }, func(x ast.Expr) { td.ArrayLength = x }))
		}
	case ast.TypeDefStruct, ast.TypeDefEnum:
		if td.Block != nil {
			f.walkBlock(td.Block)
		}
	case ast.TypeDefIdent:
		// self only: the identifier name is resolved directly by check,
		// there is no sub-expression to recurse into.
	case ast.TypeDefLambda:
		for i := range td.ArgumentTypes {
			i := i
			f.walkTypeDefinition(
				func() ast.Expr { return td.ArgumentTypes[i] },
				func(x ast.Expr) { td.ArgumentTypes[i] = x })
		}
		if td.ReturnType != nil {
			f.walkTypeDefinition(func() ast.Expr { return td.ReturnType }, func(x ast.Expr) { td.ReturnType = x })
		}
	}
	f.emitExpr(ast.SlotOf(get, set))
}

// walkStmt recurses into sub-expressions and sub-statements before emitting
// the statement itself.
func (f *flattener) walkStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		f.walkBlock(st)
		return // walkBlock already emits the block itself

	case *ast.While:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Condition }, func(x ast.Expr) { st.Condition = x }))
		if st.Body != nil {
			f.walkStmt(st.Body)
		}

	case *ast.If:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Condition }, func(x ast.Expr) { st.Condition = x }))
		if st.Then != nil {
			f.walkStmt(st.Then)
		}
		if st.Else != nil {
			f.walkStmt(st.Else)
		}

	case *ast.For:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Range }, func(x ast.Expr) { st.Range = x }))
		f.items = append(f.items, ast.HookWork(func() error { return bindForIterator(st) }))
		if st.Body != nil {
			f.walkStmt(st.Body)
		}

	case *ast.Return:
		if st.Value != nil {
			f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Value }, func(x ast.Expr) { st.Value = x }))
		}

	case *ast.Variable:
		if st.Declaration != nil {
			f.walkDeclarationValue(st.Declaration)
		}

	case *ast.Assignment:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Target }, func(x ast.Expr) { st.Target = x }))
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Value }, func(x ast.Expr) { st.Value = x }))

	case *ast.Using:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Sub }, func(x ast.Expr) { st.Sub = x }))

	case *ast.ExpressionStatement:
		f.walkExpr(ast.SlotOf(func() ast.Expr { return st.Sub }, func(x ast.Expr) { st.Sub = x }))

	case *ast.LoopControl, *ast.Import:
		// no children

	default:
		panic("flatten: unhandled statement kind")
	}
	f.emitStmt(s)
}

// walkDeclarationValue flattens a locally-declared Variable's nested
// declaration: its type/value per the same rules as a top-level Flatten
// call, inlined into the enclosing declaration's work list rather than
// given a queue of its own (local variables are not independently
// park-able -- spec.md §4.5's Variable statement "drives the nested
// declaration check" in lockstep with the rest of the enclosing body).
func (f *flattener) walkDeclarationValue(decl *ast.Declaration) {
	if decl.Type != nil {
		f.walkTypeDefinition(func() ast.Expr { return decl.Type }, func(x ast.Expr) {
			if td, ok := x.(*ast.TypeDefinition); ok {
				decl.Type = td
			}
		})
	}
	if decl.Value != nil {
		f.walkExpr(ast.SlotOf(func() ast.Expr { return decl.Value }, func(x ast.Expr) { decl.Value = x }))
	}
}

// bindForIterator derives a For loop's iterator declaration type from its
// Range expression, which by this point (the hook runs immediately after
// Range's own work items) already carries its inferred type: the common
// integer type for a `lo..hi` Binary, or the element type for an array.
// check.checkStatement's *ast.For case re-validates Range's shape once
// Body has also been processed and reports the authoritative error if it
// was neither -- this best-effort pass only has to avoid leaving
// Iterator.Inferred nil in the valid cases, so Body's own identifier
// references to it don't spuriously fail first.
func bindForIterator(st *ast.For) error {
	if st.Iterator == nil || st.Range == nil {
		return nil
	}
	rt := st.Range.InferredType()
	if rt == nil {
		return nil
	}
	var elem *types.Type
	if b, ok := st.Range.(*ast.Binary); ok && b.Op == ast.BinaryRange {
		elem = rt
	} else if rt.Kind == types.KindArray {
		elem = rt.Array.Element
	} else {
		return nil
	}
	st.Iterator.Inferred = elem
	st.Iterator.Flags |= ast.FlagHasBeenTypechecked
	return nil
}

// walkBlock walks each sub-statement, then each locally-declared
// declaration's value/nested block, then the block itself -- per spec.md
// §4.2's Block rule.
func (f *flattener) walkBlock(b *ast.Block) {
	for _, s := range b.Statements {
		f.walkStmt(s)
	}
	for _, d := range b.Declarations {
		f.walkDeclarationValue(d)
	}
	f.emitStmt(b)
}
