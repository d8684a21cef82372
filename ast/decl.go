package ast

import (
	"fmt"

	"github.com/susji/jcheck/types"
)

// DeclFlag is a bitset of the boolean properties spec.md §3/§4.3 attach to a
// Declaration: whether it's a compile-time constant, a procedure, a struct
// field, an enum value, a for-loop iterator, a global, foreign, already
// typechecked, or had its type/value inferred from the other half of the
// pair.
type DeclFlag uint32

const (
	FlagConstant DeclFlag = 1 << iota
	FlagProcedure
	FlagStructField
	FlagEnumValue
	FlagForLoopIterator
	FlagGlobalVariable
	FlagForeign
	FlagHasBeenTypechecked
	FlagTypeWasInferredFromValue
	FlagValueWasInferredFromType
	FlagIsUninitialized
)

func (f DeclFlag) Has(bit DeclFlag) bool { return f&bit != 0 }

// Declaration is spec.md §3's `Declaration` node: `name : type = value;`
// with type and/or value optional (never both absent). Position is the
// work-queue cursor used by the driver's park/resume state machine (spec.md
// §4.3); Flattened is the cached post-order WorkItem list built once by
// flatten.Flatten and then walked incrementally across parks.
type Declaration struct {
	Location Location

	Name         string
	NameLocation Location

	Type  *TypeDefinition
	Value Expr

	Flags DeclFlag

	// Block is set when this declaration lives inside one (a struct field,
	// a local variable, a procedure argument); nil for top-level
	// declarations owned directly by a workspace.
	Block *Block

	// ForeignLibrary is not set or read anywhere in this module; the
	// checker takes a `#foreign` procedure's library name from its
	// Procedure value's ForeignLibraryName instead.
	ForeignLibrary string

	// ImportRef is set when this declaration is the namespace binding
	// introduced by an #import statement (spec.md §3's `my_import?`); an
	// Ident resolving to such a declaration gets the registry's
	// ImportSentinel type rather than being typechecked normally (spec.md
	// §9, open question 2).
	ImportRef *Import

	// Inferred is the resolved *types.Type once typechecking finishes.
	Inferred *types.Type

	// Flattened and Position implement the work-queue driver's park/resume
	// mechanics: Flattened is this declaration's post-order work list,
	// Position is the index of the next WorkItem to process. A parked
	// declaration keeps Position where it stopped and re-enters the queue
	// once its blocking dependency resolves.
	Flattened []WorkItem
	Position  int
}

func (d *Declaration) String() string {
	if d == nil {
		return "(declaration nil)"
	}
	return fmt.Sprintf("(declaration %q)", d.Name)
}

// HasBeenTypechecked reports whether the driver has already finished this
// declaration -- spec.md §4.3's terminal state.
func (d *Declaration) HasBeenTypechecked() bool {
	return d.Flags.Has(FlagHasBeenTypechecked)
}
