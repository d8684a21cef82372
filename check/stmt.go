package check

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
	"github.com/susji/jcheck/workspace"
)

// checkStatement implements C5 (spec.md §4.5): each statement kind's
// children are already typechecked by the time checkStatement runs (the
// flattener emits them first), so this only validates shape/type
// relationships between already-typed children and marks s typechecked.
func checkStatement(w *workspace.Workspace, d *ast.Declaration, s ast.Statement) *CheckError {
	reg := w.Registry

	switch st := s.(type) {
	case *ast.Block:
		// Nothing to check: every statement/declaration inside already ran
		// its own work items.

	case *ast.While:
		condSlot := ast.SlotOf(func() ast.Expr { return st.Condition }, func(e ast.Expr) { st.Condition = e })
		if !AutocastToBool(reg, condSlot) {
			return errorf(st.Loc(), ErrKindShape, ErrConditionNotBool, "while condition is %s", st.Condition.InferredType())
		}

	case *ast.If:
		condSlot := ast.SlotOf(func() ast.Expr { return st.Condition }, func(e ast.Expr) { st.Condition = e })
		if !AutocastToBool(reg, condSlot) {
			return errorf(st.Loc(), ErrKindShape, ErrConditionNotBool, "if condition is %s", st.Condition.InferredType())
		}

	case *ast.For:
		if err := checkForRange(st); err != nil {
			return err
		}

	case *ast.Return:
		if err := checkReturn(reg, st); err != nil {
			return err
		}

	case *ast.Variable:
		if err := FinalizeDeclaration(reg, st.Declaration); err != nil {
			return err
		}

	case *ast.Assignment:
		if err := checkAssignment(reg, st); err != nil {
			return err
		}

	case *ast.Using:
		return errorf(st.Loc(), ErrKindUnimplemented, ErrUnimplementedUsing, "")

	case *ast.LoopControl, *ast.Import, *ast.ExpressionStatement:
		// No shape constraints.

	default:
		panic("check: unhandled statement kind")
	}

	s.SetTypechecked(true)
	return nil
}

// checkForRange validates spec.md §4.5's For contract: Range must be
// either a `lo..hi` Binary or an Array-typed expression. flatten's
// bindForIterator hook already derived Iterator's type from whichever
// shape Range actually has; this is the authoritative rejection of
// anything else, reported once Body (which may already have used the
// best-effort iterator type) has finished.
func checkForRange(st *ast.For) *CheckError {
	rt := st.Range.InferredType()
	if b, ok := st.Range.(*ast.Binary); ok && b.Op == ast.BinaryRange {
		return nil
	}
	if rt != nil && rt.Kind == types.KindArray {
		return nil
	}
	return errorf(st.Loc(), ErrKindShape, ErrForRangeInvalid, "got %s", rt)
}

// checkReturn reconciles a return statement's value against its enclosing
// procedure's return type (spec.md §4.3 rule 3, §4.5): the return type is
// the one written in the procedure's lambda type, and every Return's value
// must match it via C7 (a bare Return requires a void return type).
func checkReturn(reg *types.Registry, st *ast.Return) *CheckError {
	proc := st.Procedure
	if proc == nil {
		return nil
	}
	lambdaType := proc.Value.(*ast.Procedure).LambdaType
	lambda := lambdaType.Resolved.Extra.(*types.Lambda)

	if st.Value == nil {
		if !types.Equal(lambda.ReturnType, reg.Void) {
			return errorf(st.Loc(), ErrKindTypeMismatch, ErrReturnTypeMismatch, "expected %s, got nothing", lambda.ReturnType)
		}
		return nil
	}

	valueSlot := ast.SlotOf(func() ast.Expr { return st.Value }, func(e ast.Expr) { st.Value = e })
	return CheckThatTypesMatch(reg, valueSlot, lambda.ReturnType)
}

// checkAssignment implements spec.md §4.5's Assignment contract: Target
// must be an lvalue and not a for-loop iterator, and Value must match
// Target's type via C7.
func checkAssignment(reg *types.Registry, st *ast.Assignment) *CheckError {
	if !IsLvalue(st.Target) {
		return errorf(st.Loc(), ErrKindBadLvalue, ErrLvalueNotLvalue, "")
	}
	if ident, ok := st.Target.(*ast.Ident); ok && ident.ResolvedDeclaration != nil {
		if ident.ResolvedDeclaration.Flags.Has(ast.FlagForLoopIterator) {
			return errorf(st.Loc(), ErrKindBadLvalue, ErrLvalueIterator, "")
		}
	}
	valueSlot := ast.SlotOf(func() ast.Expr { return st.Value }, func(e ast.Expr) { st.Value = e })
	return CheckThatTypesMatch(reg, valueSlot, st.Target.InferredType())
}
