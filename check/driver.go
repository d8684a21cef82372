package check

import (
	"go.uber.org/zap"

	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/flatten"
	"github.com/susji/jcheck/jlog"
	"github.com/susji/jcheck/types"
	"github.com/susji/jcheck/workspace"
)

// Run implements C6 (spec.md §4.3/§9): it drives one declaration's
// post-order work list from d.Position, checking each expression slot or
// statement in turn. If an expression slot's inferred_type is still nil
// after checkExpression returns with no error, the declaration parks --
// Run returns (false, nil) with d.Position left exactly where it stopped,
// so a later Run call resumes from there once whatever the slot was
// waiting on (an Ident's ResolvedDeclaration, a Selector's struct field, a
// Type_Definition's Ident resolution) has made progress elsewhere.
// Grounded directly on original_source/typecheck.c's run_typecheck_queue
// loop, generalized from the teacher's single eager analyze/analyze.go
// pass (which has no park/resume at all, since C0 has no forward
// references across declarations).
func Run(w *workspace.Workspace, d *ast.Declaration, logger *zap.SugaredLogger) (bool, *CheckError) {
	if logger == nil {
		logger = jlog.Nop()
	}
	if d.HasBeenTypechecked() {
		return true, nil
	}
	if d.Flattened == nil {
		d.Flattened = flatten.Flatten(d)
	}

	for d.Position < len(d.Flattened) {
		item := d.Flattened[d.Position]

		switch {
		case item.IsHook():
			if err := item.Hook()(); err != nil {
				return false, errorf(d.Location, ErrKindShape, err, "")
			}

		case item.IsExpr():
			slot := item.Slot()
			if err := checkExpression(w, d, slot); err != nil {
				return false, err
			}
			if slot.Get().InferredType() == nil {
				logger.Debugw("park", "declaration", d.Name, "position", d.Position)
				return false, nil
			}

		default:
			if err := checkStatement(w, d, item.Statement()); err != nil {
				return false, err
			}
		}
		d.Position++
	}

	if err := FinalizeDeclaration(w.Registry, d); err != nil {
		return false, err
	}
	d.Flags |= ast.FlagHasBeenTypechecked
	logger.Debugw("finalized", "declaration", d.Name)
	return true, nil
}

// RunAll drives every declaration in decls to completion, repeatedly
// retrying whichever ones parked until either all finish or a full pass
// makes no progress at all (every remaining declaration is genuinely
// unresolvable -- a real forward-reference cycle or a name that will never
// resolve). Grounded on the same run_typecheck_queue source as Run, scaled
// from "one declaration's work list" to "the whole workspace's queue of
// declarations" exactly as the original driver does across one compilation
// unit.
func RunAll(w *workspace.Workspace, decls []*ast.Declaration, logger *zap.SugaredLogger) []*CheckError {
	if logger == nil {
		logger = jlog.Nop()
	}
	var errs []*CheckError
	pending := append([]*ast.Declaration(nil), decls...)

	for len(pending) > 0 {
		progressed := false
		next := pending[:0]
		for _, d := range pending {
			done, err := Run(w, d, logger)
			if err != nil {
				errs = append(errs, err)
				progressed = true
				continue
			}
			if done {
				progressed = true
				continue
			}
			next = append(next, d)
		}
		pending = next
		if !progressed {
			for _, d := range pending {
				errs = append(errs, errorf(d.Location, ErrKindCircularDependency, ErrCircularDependency, "%q", d.Name))
			}
			break
		}
	}
	return errs
}

// FinalizeDeclaration implements spec.md §4.3's six finalization rules
// once every work item for d (or, for a local Variable, its nested
// Declaration) has been checked: reconcile Type against Value (or
// synthesize one from the other), reject void-typed variables, and -- for
// a #foreign declaration -- require its ForeignLibraryName to resolve to
// an #import.
func FinalizeDeclaration(reg *types.Registry, d *ast.Declaration) *CheckError {
	switch {
	case d.Type == nil && d.Value == nil:
		return errorf(d.Location, ErrKindShape, ErrDeclarationNoTypeOrValue, "%q", d.Name)

	case d.Type != nil && d.Value == nil:
		if d.Flags.Has(ast.FlagConstant) {
			return errorf(d.Location, ErrKindShape, ErrDeclarationConstantNeedsValue, "%q", d.Name)
		}
		d.Value = DefaultFor(reg, d.Type.Resolved, d.Location)
		d.Flags |= ast.FlagValueWasInferredFromType
		d.Inferred = d.Type.Resolved

	case d.Type != nil && d.Value != nil:
		valueSlot := ast.SlotOf(func() ast.Expr { return d.Value }, func(e ast.Expr) { d.Value = e })
		if d.Flags.Has(ast.FlagEnumValue) {
			if err := checkEnumValue(reg, d, valueSlot); err != nil {
				return err
			}
		} else if err := CheckThatTypesMatch(reg, valueSlot, d.Type.Resolved); err != nil {
			return err
		}
		d.Inferred = d.Type.Resolved

	default: // d.Type == nil && d.Value != nil
		d.Inferred = d.Value.InferredType()
		d.Flags |= ast.FlagTypeWasInferredFromValue
		if n, ok := d.Value.(*ast.Number); ok {
			n.InferredTypeIsFinal = true
		}
	}

	if !d.Flags.Has(ast.FlagConstant) && !d.Flags.Has(ast.FlagProcedure) && types.Equal(d.Inferred, reg.Void) {
		return errorf(d.Location, ErrKindShape, ErrDeclarationVoidType, "%q", d.Name)
	}

	if d.Flags.Has(ast.FlagForeign) {
		if err := checkForeignLibrary(d); err != nil {
			return err
		}
	}
	return nil
}

// checkEnumValue implements spec.md §4.3 rule 3's IS_ENUM_VALUE branch: an
// enum member's value is checked as a Number against the enclosing enum's
// underlying integer type, not against the Enum type itself (a bare
// CheckThatTypesMatch(Number, Enum) would never match any of C7's five
// rules and always report a mismatch).
func checkEnumValue(reg *types.Registry, d *ast.Declaration, valueSlot ast.Slot) *CheckError {
	if _, ok := valueSlot.Get().(*ast.Number); !ok {
		return errorf(d.Location, ErrKindTypeMismatch, ErrEnumValueNonNumber, "%q", d.Name)
	}
	underlying := d.Type.Resolved.Extra.(*types.Enum).Underlying
	return CheckNumber(reg, valueSlot, underlying)
}

func checkForeignLibrary(d *ast.Declaration) *CheckError {
	proc, ok := d.Value.(*ast.Procedure)
	if !ok || proc.ForeignLibraryName == nil {
		return errorf(d.Location, ErrKindShape, ErrForeignNotImport, "%q", d.Name)
	}
	target := proc.ForeignLibraryName.ResolvedDeclaration
	if target == nil || target.ImportRef == nil {
		return errorf(proc.ForeignLibraryName.Loc(), ErrKindTypeMismatch, ErrForeignNotImport, "%q", proc.ForeignLibraryName.Name)
	}
	return nil
}
