package check

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
	"github.com/susji/jcheck/workspace"
)

// checkExpression dispatches on slot's current expression kind, exactly
// spec.md §4.4's per-kind contracts. A nil, nil return with the slot's
// inferred_type still unset means "park" (spec.md §4.3/§4.9); every other
// outcome either leaves inferred_type set or returns a fatal *CheckError.
func checkExpression(w *workspace.Workspace, d *ast.Declaration, slot ast.Slot) *CheckError {
	switch e := slot.Get().(type) {
	case *ast.Number:
		if e.InferredType() != nil {
			return nil // already resumed from an earlier park elsewhere
		}
		return CheckNumber(w.Registry, slot, nil)
	case *ast.Literal:
		return checkLiteral(w.Registry, e)
	case *ast.Ident:
		return checkIdent(w, d, slot)
	case *ast.Unary:
		return checkUnary(w, slot)
	case *ast.Binary:
		return checkBinary(w, slot)
	case *ast.Procedure:
		return checkProcedure(w, e)
	case *ast.ProcedureCall:
		return checkProcedureCall(w, slot)
	case *ast.TypeDefinition:
		return checkTypeDefinition(w, slot)
	case *ast.Cast:
		return checkCast(w, slot)
	case *ast.Selector:
		return checkSelector(w, slot)
	case *ast.TypeInstantiation:
		return checkTypeInstantiation(w, slot)
	default:
		panic("check: unhandled expression kind")
	}
}

// --- Number -----------------------------------------------------------

// CheckNumber implements spec.md §4.4's Number contract. supplied may be
// nil (no context type: infer float64/float/int per the literal's own
// flags) or a concrete expected type to check/finalize against.
func CheckNumber(reg *types.Registry, slot ast.Slot, supplied *types.Type) *CheckError {
	n := slot.Get().(*ast.Number)

	if supplied == nil {
		switch {
		case n.Float64:
			n.SetInferredType(reg.Float64)
		case n.IsFloat:
			n.SetInferredType(reg.Float)
		default:
			n.SetInferredType(reg.Int)
		}
		return nil
	}

	if supplied.Kind != types.KindNumber {
		return errorf(n.Loc(), ErrKindTypeMismatch, ErrNumberNonNumberType, "got %s", supplied)
	}

	if n.IsFloat {
		if !supplied.Number.Float {
			return errorf(n.Loc(), ErrKindTypeMismatch, ErrNumberFloatIntoNonFloat, "into %s", supplied)
		}
		if n.Float64 && !supplied.Number.Float64 {
			return errorf(n.Loc(), ErrKindTypeMismatch, ErrNumberFloat64IntoFloat32, "")
		}
		n.SetInferredType(supplied)
		n.InferredTypeIsFinal = true
		return nil
	}

	if supplied.Number.Float {
		// Integer literal into float type: accepted.
		n.SetInferredType(supplied)
		n.InferredTypeIsFinal = true
		return nil
	}

	if err := rangeCheckInteger(n, supplied); err != nil {
		return err
	}
	n.SetInferredType(supplied)
	n.InferredTypeIsFinal = true
	return nil
}

func rangeCheckInteger(n *ast.Number, supplied *types.Type) *CheckError {
	if supplied.Number.Signed {
		v := int64(n.Integer)
		low, high := supplied.Number.SignedRange()
		if v > high {
			return errorf(n.Loc(), ErrKindRange, ErrNumberTooBig, "max for %s is %d", supplied, high)
		}
		if v < low {
			return errorf(n.Loc(), ErrKindRange, ErrNumberTooSmall, "min for %s is %d", supplied, low)
		}
		return nil
	}
	if n.Signed && int64(n.Integer) < 0 {
		return errorf(n.Loc(), ErrKindRange, ErrNumberTooSmall, "negative value cannot fit %s", supplied)
	}
	_, high := supplied.Number.UnsignedRange()
	if n.Integer > high {
		return errorf(n.Loc(), ErrKindRange, ErrNumberTooBig, "max for %s is %d", supplied, high)
	}
	return nil
}

// --- Literal ------------------------------------------------------------

func checkLiteral(reg *types.Registry, l *ast.Literal) *CheckError {
	if l.InferredType() != nil {
		return nil
	}
	switch l.Kind {
	case types.LiteralBool:
		l.SetInferredType(reg.Bool)
	case types.LiteralString:
		l.SetInferredType(reg.String)
	case types.LiteralNull:
		l.SetInferredType(reg.Null)
	default:
		l.SetInferredType(reg.Void)
	}
	return nil
}

// --- Ident ----------------------------------------------------------------

func checkIdent(w *workspace.Workspace, d *ast.Declaration, slot ast.Slot) *CheckError {
	ident := slot.Get().(*ast.Ident)

	if ident.ResolvedDeclaration == nil {
		target, ok := w.Scope.FindDeclarationFromIdentifier(ident.EnclosingBlock, ident.Name)
		if !ok {
			return errorf(ident.Loc(), ErrKindUnresolvedName, ErrUnresolvedName, "%q", ident.Name)
		}
		ident.ResolvedDeclaration = target
	}
	target := ident.ResolvedDeclaration

	if target == d && !d.HasBeenTypechecked() {
		return errorf(ident.Loc(), ErrKindCircularDependency, ErrCircularDependency, "%q", ident.Name)
	}

	if target.ImportRef != nil {
		ident.SetInferredType(w.Registry.ImportSentinel)
		return nil
	}

	if target.Flags.Has(ast.FlagProcedure) {
		ident.SetInferredType(target.Inferred)
		return nil
	}

	if !target.HasBeenTypechecked() {
		if !target.Flags.Has(ast.FlagConstant) && !target.Flags.Has(ast.FlagGlobalVariable) {
			return errorf(ident.Loc(), ErrKindUseBeforeDefinition, ErrUseBeforeDefinition, "%q", ident.Name)
		}
		return nil // park: referent is a constant/global that hasn't finished yet
	}

	if target.Flags.Has(ast.FlagConstant) {
		ast.Substitute(slot, target.Value)
		return nil
	}
	ident.SetInferredType(target.Inferred)
	return nil
}

// --- Unary ------------------------------------------------------------

func checkUnary(w *workspace.Workspace, slot ast.Slot) *CheckError {
	u := slot.Get().(*ast.Unary)
	reg := w.Registry
	subSlot := ast.SlotOf(func() ast.Expr { return u.Sub }, func(e ast.Expr) { u.Sub = e })

	switch u.Op {
	case ast.UnaryNot:
		if !AutocastToBool(reg, subSlot) {
			return errorf(u.Loc(), ErrKindTypeMismatch, ErrConditionNotBool, "cannot autocast %s to bool", u.Sub.InferredType())
		}
		u.SetInferredType(reg.Bool)
		return nil

	case ast.UnaryNegate:
		if n, ok := u.Sub.(*ast.Number); ok {
			ast.Substitute(slot, FoldNegate(n))
			return nil
		}
		u.SetInferredType(u.Sub.InferredType())
		return nil

	case ast.UnaryBitwiseNot:
		st := u.Sub.InferredType()
		if !types.IsInteger(st) {
			return errorf(u.Loc(), ErrKindShape, ErrUnaryBitwiseNotOnFloat, "")
		}
		if n, ok := u.Sub.(*ast.Number); ok {
			ast.Substitute(slot, FoldBitwiseNot(n))
			return nil
		}
		u.SetInferredType(st)
		return nil

	case ast.UnaryAddressOf:
		if !IsLvalue(u.Sub) {
			return errorf(u.Loc(), ErrKindBadLvalue, ErrUnaryAddressOfNotLvalue, "")
		}
		u.SetInferredType(&types.Type{Kind: types.KindPointer, Pointee: u.Sub.InferredType(), Size: 8})
		return nil

	case ast.UnaryDereference:
		st := u.Sub.InferredType()
		if st == nil || st.Kind != types.KindPointer {
			return errorf(u.Loc(), ErrKindTypeMismatch, ErrUnaryDereferenceNotPointer, "")
		}
		u.SetInferredType(st.Pointee)
		return nil
	}
	panic("check: unhandled unary operator")
}

// --- Binary -----------------------------------------------------------

func checkBinary(w *workspace.Workspace, slot ast.Slot) *CheckError {
	b := slot.Get().(*ast.Binary)
	reg := w.Registry
	lt, rt := b.Left.InferredType(), b.Right.InferredType()

	if b.Op.IsLogical() {
		return checkLogicalBinary(reg, slot, b)
	}
	if b.Op == ast.BinaryIndex {
		return checkIndexBinary(b, lt, rt)
	}
	if b.Op == ast.BinaryRange {
		return checkRangeBinary(reg, b, lt, rt)
	}

	ln, lisnum := b.Left.(*ast.Number)
	rn, risnum := b.Right.(*ast.Number)
	if lisnum && risnum {
		folded, err := Fold(reg, b.Op, ln, rn, b.Loc())
		if err != nil {
			return err
		}
		ast.Substitute(slot, folded)
		return nil
	}

	rightSlot := ast.SlotOf(func() ast.Expr { return b.Right }, func(e ast.Expr) { b.Right = e })

	switch {
	case b.Op == ast.BinaryAdd || b.Op == ast.BinarySub:
		if lt != nil && lt.Kind == types.KindPointer {
			return checkPointerArith(reg, b, lt, rt)
		}
		return checkArithBinary(reg, b, rightSlot, lt)

	case b.Op == ast.BinaryMul || b.Op == ast.BinaryDiv || b.Op == ast.BinaryMod:
		return checkArithBinary(reg, b, rightSlot, lt)

	case b.Op.IsComparison():
		return checkComparisonBinary(reg, b, rightSlot, lt, rt)

	case b.Op.IsBitwise():
		return checkBitwiseBinary(b, lt, rt)
	}
	panic("check: unhandled binary operator")
}

func checkArithBinary(reg *types.Registry, b *ast.Binary, rightSlot ast.Slot, lt *types.Type) *CheckError {
	if !types.IsInteger(lt) && !types.IsFloat(lt) {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryArithNonNumber, "left operand is %s", lt)
	}
	if err := CheckThatTypesMatch(reg, rightSlot, lt); err != nil {
		return err
	}
	b.SetInferredType(lt)
	return nil
}

func checkComparisonBinary(reg *types.Registry, b *ast.Binary, rightSlot ast.Slot, lt, rt *types.Type) *CheckError {
	if b.Op == ast.BinaryEq || b.Op == ast.BinaryNeq {
		if err := CheckThatTypesMatch(reg, rightSlot, lt); err != nil {
			return err
		}
		b.SetInferredType(reg.Bool)
		return nil
	}
	isOrderable := types.IsInteger(lt) || types.IsFloat(lt) || (lt != nil && lt.Kind == types.KindPointer)
	if !isOrderable {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryCompareMismatch, "left operand is %s", lt)
	}
	if err := CheckThatTypesMatch(reg, rightSlot, lt); err != nil {
		return err
	}
	b.SetInferredType(reg.Bool)
	return nil
}

func checkBitwiseBinary(b *ast.Binary, lt, rt *types.Type) *CheckError {
	if !types.IsInteger(lt) {
		return errorf(b.Loc(), ErrKindShape, ErrBinaryBitwiseOnFloat, "left operand is %s", lt)
	}
	if !types.IsInteger(rt) {
		return errorf(b.Loc(), ErrKindShape, ErrBinaryBitwiseOnFloat, "right operand is %s", rt)
	}
	if !types.Equal(lt, rt) {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryBitwiseTypeMismatch, "%s vs %s", lt, rt)
	}
	b.SetInferredType(lt)
	return nil
}

func checkIndexBinary(b *ast.Binary, lt, rt *types.Type) *CheckError {
	if lt == nil || lt.Kind != types.KindArray {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrArraySubscriptNonArray, "got %s", lt)
	}
	if !types.IsInteger(rt) {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrArraySubscriptIndexNonInteger, "got %s", rt)
	}
	b.SetInferredType(lt.Array.Element)
	return nil
}

func checkRangeBinary(reg *types.Registry, b *ast.Binary, lt, rt *types.Type) *CheckError {
	if !types.IsInteger(lt) || !types.IsInteger(rt) {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryArithNonNumber, "range bounds must be integers")
	}
	b.SetInferredType(reg.WidestInteger(lt, rt))
	return nil
}

func checkPointerArith(reg *types.Registry, b *ast.Binary, lt, rt *types.Type) *CheckError {
	if rt != nil && rt.Kind == types.KindPointer {
		if !types.Equal(lt.Pointee, rt.Pointee) {
			return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryPointerMismatch, "%s vs %s", lt, rt)
		}
		b.SetInferredType(reg.Int)
		return nil
	}
	if !types.IsInteger(rt) {
		return errorf(b.Loc(), ErrKindTypeMismatch, ErrBinaryPointerMismatch, "expected integer offset, got %s", rt)
	}
	b.SetInferredType(lt)
	return nil
}

func checkLogicalBinary(reg *types.Registry, slot ast.Slot, b *ast.Binary) *CheckError {
	lslot := ast.SlotOf(func() ast.Expr { return b.Left }, func(e ast.Expr) { b.Left = e })
	rslot := ast.SlotOf(func() ast.Expr { return b.Right }, func(e ast.Expr) { b.Right = e })

	if !AutocastToBool(reg, lslot) {
		return errorf(b.Loc(), ErrKindShape, ErrConditionNotBool, "left operand of %s", b.Op)
	}
	if !AutocastToBool(reg, rslot) {
		return errorf(b.Loc(), ErrKindShape, ErrConditionNotBool, "right operand of %s", b.Op)
	}

	if ll, ok := b.Left.(*ast.Literal); ok && ll.Kind == types.LiteralBool {
		if rl, ok2 := b.Right.(*ast.Literal); ok2 && rl.Kind == types.LiteralBool {
			var v bool
			if b.Op == ast.BinaryAnd {
				v = ll.Bool && rl.Bool
			} else {
				v = ll.Bool || rl.Bool
			}
			ast.Substitute(slot, ast.NewBoolLiteral(b.Loc(), v, reg.Bool))
			return nil
		}
	}
	b.SetInferredType(reg.Bool)
	return nil
}

// --- Procedure / Procedure_Call ------------------------------------------

func checkProcedure(w *workspace.Workspace, p *ast.Procedure) *CheckError {
	p.SetInferredType(p.LambdaType.Resolved)
	return nil
}

func checkProcedureCall(w *workspace.Workspace, slot ast.Slot) *CheckError {
	c := slot.Get().(*ast.ProcedureCall)
	reg := w.Registry

	ct := c.Procedure.InferredType()
	if ct == nil || ct.Kind != types.KindLambda {
		return errorf(c.Loc(), ErrKindTypeMismatch, ErrCallNonLambda, "got %s", ct)
	}
	lambda := ct.Extra.(*types.Lambda)

	if len(c.Arguments) < len(lambda.ArgumentTypes) ||
		(!lambda.Variadic && len(c.Arguments) != len(lambda.ArgumentTypes)) {
		return errorf(c.Loc(), ErrKindShape, ErrCallArgumentCount,
			"expected %d, got %d", len(lambda.ArgumentTypes), len(c.Arguments))
	}

	for i := range lambda.ArgumentTypes {
		i := i
		argSlot := ast.SlotOf(func() ast.Expr { return c.Arguments[i] }, func(e ast.Expr) { c.Arguments[i] = e })
		if err := CheckThatTypesMatch(reg, argSlot, lambda.ArgumentTypes[i]); err != nil {
			return err
		}
	}
	c.SetInferredType(lambda.ReturnType)
	return nil
}

// --- Type_Definition ------------------------------------------------------

// checkTypeDefinition resolves td.Resolved per its kind, then -- and only
// then -- marks td itself typechecked by setting its inferred_type to the
// meta-type Type (spec.md §4.4). Every "park" path below must return before
// SetInferredType is reached: the driver's park test (check/driver.go's Run)
// is "slot.Get().InferredType() == nil", so setting InferredType ahead of
// td.Resolved being computed would make the driver advance past an
// unresolved type definition instead of waiting for it.
func checkTypeDefinition(w *workspace.Workspace, slot ast.Slot) *CheckError {
	td := slot.Get().(*ast.TypeDefinition)
	reg := w.Registry

	if err := resolveTypeDefinition(w, td); err != nil {
		return err
	}
	if td.Resolved == nil {
		return nil // park: nothing below resolved yet
	}
	td.SetInferredType(reg.TypeType)
	return nil
}

func resolveTypeDefinition(w *workspace.Workspace, td *ast.TypeDefinition) *CheckError {
	reg := w.Registry

	switch td.Kind {
	case ast.TypeDefIdent:
		if builtin := reg.Lookup(td.Name); builtin != nil {
			td.Resolved = builtin
			return nil
		}
		decl, ok := w.Scope.FindDeclarationFromIdentifier(td.EnclosingBlock, td.Name)
		if !ok {
			return errorf(td.Loc(), ErrKindUnresolvedName, ErrUnresolvedName, "%q", td.Name)
		}
		if !decl.HasBeenTypechecked() {
			return nil // park
		}
		if !decl.Flags.Has(ast.FlagConstant) || !types.Equal(decl.Inferred, reg.TypeType) {
			return errorf(td.Loc(), ErrKindTypeMismatch, ErrTypeDefinitionUnresolved, "%q", td.Name)
		}
		if valueDef, ok := decl.Value.(*ast.TypeDefinition); ok {
			td.Resolved = valueDef.Resolved
		}
		return nil

	case ast.TypeDefPointer:
		pointee := td.Pointee.(*ast.TypeDefinition).Resolved
		if pointee == nil {
			return nil // park on an unresolved pointee
		}
		td.Resolved = &types.Type{Kind: types.KindPointer, Pointee: pointee, Size: 8}
		return nil

	case ast.TypeDefArray:
		elem := td.Element.(*ast.TypeDefinition).Resolved
		if elem == nil {
			return nil
		}
		switch td.ArrayKind {
		case types.ArrayFixed:
			length, ok := td.ArrayLength.(*ast.Number)
			if !ok {
				return errorf(td.Loc(), ErrKindShape, ErrArraySubscriptIndexNonInteger, "fixed array length must be an integer constant")
			}
			td.Resolved = &types.Type{
				Kind: types.KindArray,
				Array: types.ArrayInfo{Kind: types.ArrayFixed, Length: int64(length.Integer), Element: elem},
				Size:  int64(length.Integer) * elem.Size,
			}
		case types.ArraySlice:
			td.Resolved = &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArraySlice, Element: elem}, Size: 16}
		default:
			td.Resolved = &types.Type{Kind: types.KindArray, Array: types.ArrayInfo{Kind: types.ArrayDynamic, Element: elem}, Size: 24}
		}
		return nil

	case ast.TypeDefStruct:
		return finalizeStructTypeDefinition(reg, td)

	case ast.TypeDefEnum:
		return finalizeEnumTypeDefinition(reg, td)

	case ast.TypeDefLambda:
		args := make([]*types.Type, len(td.ArgumentTypes))
		for i, a := range td.ArgumentTypes {
			rt := a.(*ast.TypeDefinition).Resolved
			if rt == nil {
				return nil // park
			}
			args[i] = rt
		}
		ret := td.ReturnType.(*ast.TypeDefinition).Resolved
		if ret == nil {
			return nil
		}
		td.Resolved = &types.Type{
			Kind: types.KindLambda,
			Extra: &types.Lambda{ArgumentTypes: args, ReturnType: ret, Variadic: td.Variadic},
			Size: 8,
		}
		return nil
	}
	panic("check: unhandled type-definition kind")
}

// finalizeStructTypeDefinition sums a struct type's field sizes once every
// field declaration is ready. Field declarations live in td.Block.Declarations
// but, unlike a local Variable statement's nested declaration, nothing
// wraps them in a statement that calls FinalizeDeclaration -- flatten's
// walkBlock only flattens each field's Type/Value expression work items, not
// the field Declaration itself (spec.md §4.2's Block rule has no "statement"
// for a bare field). So this is the one place a field's FinalizeDeclaration
// runs: once its Type has resolved and/or its Value has a type, finalize it
// here, the same way *ast.Variable's case in checkStatement finalizes a
// local declaration.
func finalizeStructTypeDefinition(reg *types.Registry, td *ast.TypeDefinition) *CheckError {
	if td.Resolved != nil {
		return nil
	}
	fields := make([]*types.Type, 0, len(td.Block.Declarations))
	var size int64
	for _, fd := range td.Block.Declarations {
		if !fd.HasBeenTypechecked() {
			if !fieldDeclarationReady(fd) {
				return nil // park until this field's type/value resolves
			}
			if err := FinalizeDeclaration(reg, fd); err != nil {
				return err
			}
			fd.Flags |= ast.FlagHasBeenTypechecked
		}
		fields = append(fields, fd.Inferred)
		size += fd.Inferred.Size
	}
	td.Resolved = &types.Type{
		Kind: types.KindStruct,
		Extra: &types.Struct{
			Block:      td.Block,
			FieldTypes: fields,
			FieldCount: len(fields),
		},
		Size: size,
	}
	return nil
}

// fieldDeclarationReady reports whether fd's Type/Value work items (already
// flattened and checked individually alongside the struct's other work
// items) have produced everything FinalizeDeclaration needs.
func fieldDeclarationReady(fd *ast.Declaration) bool {
	if fd.Type != nil && fd.Type.Resolved == nil {
		return false
	}
	if fd.Value != nil && fd.Value.InferredType() == nil {
		return false
	}
	return true
}

func finalizeEnumTypeDefinition(reg *types.Registry, td *ast.TypeDefinition) *CheckError {
	if td.Resolved != nil {
		return nil
	}
	td.Resolved = &types.Type{
		Kind:  types.KindEnum,
		Extra: &types.Enum{Block: td.Block, Underlying: reg.Int},
		Size:  reg.Int.Size,
	}
	return nil
}

// --- Cast -----------------------------------------------------------------

func checkCast(w *workspace.Workspace, slot ast.Slot) *CheckError {
	c := slot.Get().(*ast.Cast)
	target := c.Type.Resolved
	source := c.Sub.InferredType()
	if target == nil {
		return nil // park: c.Type hasn't resolved yet
	}

	if types.Equal(target, source) {
		return errorf(c.Loc(), ErrKindTypeMismatch, ErrCastSameType, "%s", target)
	}
	if c.ValueCast && (target == nil || source == nil || target.Kind != source.Kind) {
		return errorf(c.Loc(), ErrKindTypeMismatch, ErrCastValueCastKindMismatch, "%s vs %s", source, target)
	}
	c.SetInferredType(target)
	return nil
}

// --- Selector ---------------------------------------------------------

func checkSelector(w *workspace.Workspace, slot ast.Slot) *CheckError {
	s := slot.Get().(*ast.Selector)
	reg := w.Registry
	nt := s.Namespace.InferredType()

	if nt == nil {
		return nil
	}

	if td, ok := s.Namespace.(*ast.TypeDefinition); ok && td.Resolved != nil && td.Resolved.Kind == types.KindEnum {
		return errorf(s.Loc(), ErrKindUnimplemented, ErrUnimplementedEnumInstantiation, "%q", s.Name)
	}

	switch {
	case types.Equal(nt, reg.String):
		return checkStringSelector(reg, s)

	case nt.Kind == types.KindArray:
		return checkArraySelector(reg, slot, s, nt)

	case nt.Kind == types.KindStruct:
		return checkStructSelector(w, slot, s, nt)

	case nt.Kind == types.KindPointer:
		return errorf(s.Loc(), ErrKindUnimplemented, ErrUnimplementedDereferenceSelector, "")

	default:
		return errorf(s.Loc(), ErrKindTypeMismatch, ErrSelectorUnsupportedNamespace, "got %s", nt)
	}
}

func checkStringSelector(reg *types.Registry, s *ast.Selector) *CheckError {
	switch s.Name {
	case "data":
		s.StructFieldIndex = 0
		s.SetInferredType(&types.Type{Kind: types.KindPointer, Pointee: reg.U8, Size: 8})
	case "count":
		s.StructFieldIndex = 1
		s.SetInferredType(reg.Int)
	default:
		return errorf(s.Loc(), ErrKindTypeMismatch, ErrSelectorFieldNotFound, "%q on string", s.Name)
	}
	return nil
}

func checkArraySelector(reg *types.Registry, slot ast.Slot, s *ast.Selector, nt *types.Type) *CheckError {
	switch s.Name {
	case "data":
		s.StructFieldIndex = 0
		s.SetInferredType(&types.Type{Kind: types.KindPointer, Pointee: nt.Array.Element, Size: 8})
	case "count":
		s.StructFieldIndex = 1
		if nt.Array.Kind == types.ArrayFixed {
			ast.Substitute(slot, ast.NewIntNumber(s.Loc(), uint64(nt.Array.Length), true, reg.Int))
			return nil
		}
		s.SetInferredType(reg.Int)
	case "capacity":
		if nt.Array.Kind != types.ArrayDynamic {
			return errorf(s.Loc(), ErrKindTypeMismatch, ErrSelectorFieldNotFound, "%q requires a dynamic array", s.Name)
		}
		s.StructFieldIndex = 2
		s.SetInferredType(reg.Int)
	default:
		return errorf(s.Loc(), ErrKindTypeMismatch, ErrSelectorFieldNotFound, "%q on array", s.Name)
	}
	return nil
}

func checkStructSelector(w *workspace.Workspace, slot ast.Slot, s *ast.Selector, nt *types.Type) *CheckError {
	st := nt.Extra.(*types.Struct)
	fd, ok := w.Scope.FindDeclarationInBlock(st.Block, s.Name)
	if !ok {
		return errorf(s.Loc(), ErrKindTypeMismatch, ErrSelectorFieldNotFound, "%q on struct", s.Name)
	}
	if !fd.HasBeenTypechecked() {
		return nil // park: the field is looked up again on the next call
	}
	if fd.Flags.Has(ast.FlagConstant) {
		ast.Substitute(slot, fd.Value)
		return nil
	}
	if blk, ok := st.Block.(*ast.Block); ok {
		for i, f := range blk.Declarations {
			if f == fd {
				s.StructFieldIndex = i
				break
			}
		}
	}
	s.SetInferredType(fd.Inferred)
	return nil
}

// --- Type_Instantiation -------------------------------------------------

func checkTypeInstantiation(w *workspace.Workspace, slot ast.Slot) *CheckError {
	ti := slot.Get().(*ast.TypeInstantiation)
	reg := w.Registry
	target := ti.TypeExpr.Resolved
	if target == nil {
		return nil
	}

	if len(ti.Arguments) == 0 {
		ast.Substitute(slot, DefaultFor(reg, target, ti.Loc()))
		return nil
	}

	switch target.Kind {
	case types.KindNumber, types.KindLiteral, types.KindPointer:
		if len(ti.Arguments) != 1 {
			return errorf(ti.Loc(), ErrKindShape, ErrInstantiationArgumentCount, "expected 1, got %d", len(ti.Arguments))
		}
		argSlot := ast.SlotOf(func() ast.Expr { return ti.Arguments[0] }, func(e ast.Expr) { ti.Arguments[0] = e })
		if err := CheckThatTypesMatch(reg, argSlot, target); err != nil {
			return err
		}
		ast.Substitute(slot, ti.Arguments[0])
		return nil

	case types.KindArray:
		return checkArrayInstantiation(reg, ti, target)

	case types.KindStruct:
		return checkStructInstantiation(reg, ti, target)

	default:
		return errorf(ti.Loc(), ErrKindUnimplemented, ErrInstantiationUnsupportedKind, "%s", target)
	}
}

func checkArrayInstantiation(reg *types.Registry, ti *ast.TypeInstantiation, target *types.Type) *CheckError {
	var want int
	switch target.Array.Kind {
	case types.ArrayFixed:
		want = int(target.Array.Length)
	case types.ArraySlice:
		want = 2
	default:
		want = 3
	}
	if target.Array.Kind == types.ArrayFixed {
		if len(ti.Arguments) != want {
			return errorf(ti.Loc(), ErrKindShape, ErrInstantiationArgumentCount, "expected %d, got %d", want, len(ti.Arguments))
		}
		for i := range ti.Arguments {
			i := i
			argSlot := ast.SlotOf(func() ast.Expr { return ti.Arguments[i] }, func(e ast.Expr) { ti.Arguments[i] = e })
			if err := CheckThatTypesMatch(reg, argSlot, target.Array.Element); err != nil {
				return err
			}
		}
		ti.SetInferredType(target)
		return nil
	}
	if len(ti.Arguments) != want {
		return errorf(ti.Loc(), ErrKindShape, ErrInstantiationArgumentCount, "expected %d, got %d", want, len(ti.Arguments))
	}
	ptrType := &types.Type{Kind: types.KindPointer, Pointee: target.Array.Element, Size: 8}
	expect := []*types.Type{ptrType, reg.Int, reg.Int}
	for i := range ti.Arguments {
		i := i
		argSlot := ast.SlotOf(func() ast.Expr { return ti.Arguments[i] }, func(e ast.Expr) { ti.Arguments[i] = e })
		if err := CheckThatTypesMatch(reg, argSlot, expect[i]); err != nil {
			return err
		}
	}
	ti.SetInferredType(target)
	return nil
}

func checkStructInstantiation(reg *types.Registry, ti *ast.TypeInstantiation, target *types.Type) *CheckError {
	st := target.Extra.(*types.Struct)
	if len(ti.Arguments) != st.FieldCount {
		return errorf(ti.Loc(), ErrKindShape, ErrInstantiationArgumentCount, "expected %d, got %d", st.FieldCount, len(ti.Arguments))
	}
	for i := range ti.Arguments {
		i := i
		argSlot := ast.SlotOf(func() ast.Expr { return ti.Arguments[i] }, func(e ast.Expr) { ti.Arguments[i] = e })
		if err := CheckThatTypesMatch(reg, argSlot, st.FieldTypes[i]); err != nil {
			return err
		}
	}
	ti.SetInferredType(target)
	return nil
}
