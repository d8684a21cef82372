package workspace

import (
	"github.com/susji/jcheck/ast"
	"github.com/susji/jcheck/types"
)

// Fixtures hand-builds the AST trees spec.md §8's end-to-end scenarios
// describe, since parsing is an explicit external collaborator (spec.md
// §1/§6) this module never implements. Grounded on the teacher's own
// cmd/parse/main.go role ("mainly intended for quick and dirty testing")
// and on how a type-checker-core test suite conventionally exercises
// itself when the parser lives in a separate package entirely: build the
// tree directly, the way the parser would have, and hand it to the
// checker.

func loc(file string, line int) ast.Location {
	return ast.Location{File: file, Line0: line, Col0: 1, Line1: line, Col1: 1}
}

func intLit(l ast.Location, v uint64) *ast.Number {
	return &ast.Number{ExprHeader: ast.ExprHeader{Location: l}, Integer: v}
}

func boolLit(l ast.Location, v bool) *ast.Literal {
	return &ast.Literal{ExprHeader: ast.ExprHeader{Location: l}, Kind: types.LiteralBool, Bool: v}
}

func typeIdent(l ast.Location, name string) *ast.TypeDefinition {
	return &ast.TypeDefinition{ExprHeader: ast.ExprHeader{Location: l}, Kind: ast.TypeDefIdent, Name: name}
}

func ident(l ast.Location, name string, enclosing *ast.Block) *ast.Ident {
	return &ast.Ident{ExprHeader: ast.ExprHeader{Location: l}, Name: name, EnclosingBlock: enclosing}
}

func global(l ast.Location, name string, typ *ast.TypeDefinition, value ast.Expr, flags ast.DeclFlag) *ast.Declaration {
	return &ast.Declaration{
		Location:     l,
		Name:         name,
		NameLocation: l,
		Type:         typ,
		Value:        value,
		Flags:        flags | ast.FlagGlobalVariable,
	}
}

// FixedArrayToSlice builds `a : [3] int = .{1, 2, 3}; b : [] int = a;`,
// exercising C7 rule 4 (spec.md §4.7, §8): b's declared Slice type is
// satisfied by synthesizing a `.{&a[0], 3}` instantiation from a's Fixed
// array value.
func FixedArrayToSlice(file string) *ast.Block {
	la, lb := loc(file, 1), loc(file, 2)
	blk := &ast.Block{}

	arrType := func() *ast.TypeDefinition {
		return &ast.TypeDefinition{
			ExprHeader: ast.ExprHeader{Location: la},
			Kind:        ast.TypeDefArray,
			ArrayKind:   types.ArrayFixed,
			ArrayLength: intLit(la, 3),
			Element:     typeIdent(la, "int"),
		}
	}
	sliceType := &ast.TypeDefinition{
		ExprHeader: ast.ExprHeader{Location: lb},
		Kind:      ast.TypeDefArray,
		ArrayKind: types.ArraySlice,
		Element:   typeIdent(lb, "int"),
	}

	a := global(la, "a", arrType(), &ast.TypeInstantiation{
		ExprHeader: ast.ExprHeader{Location: la},
		TypeExpr:   arrType(),
		Arguments:  []ast.Expr{intLit(la, 1), intLit(la, 2), intLit(la, 3)},
	}, 0)
	b := global(lb, "b", sliceType, ident(lb, "a", blk), 0)

	blk.Declarations = []*ast.Declaration{a, b}
	return blk
}

// IntegerRangeOverflow builds `y : u8 = 300;`, which must fail C4's Number
// contract (spec.md §4.4, §8): 300 exceeds u8's range.
func IntegerRangeOverflow(file string) *ast.Block {
	l := loc(file, 1)
	y := global(l, "y", typeIdent(l, "u8"), intLit(l, 300), 0)
	return &ast.Block{Declarations: []*ast.Declaration{y}}
}

// ConstantFoldRefinalize builds `y : u8 = 3 + 4;`, exercising spec.md
// §4.6/§4.7's interaction: the fold result must stay open to
// re-finalization against u8 rather than defaulting to `int` and failing.
func ConstantFoldRefinalize(file string) *ast.Block {
	l := loc(file, 1)
	sum := &ast.Binary{ExprHeader: ast.ExprHeader{Location: l}, Op: ast.BinaryAdd, Left: intLit(l, 3), Right: intLit(l, 4)}
	y := global(l, "y", typeIdent(l, "u8"), sum, 0)
	return &ast.Block{Declarations: []*ast.Declaration{y}}
}

// ForwardReference builds `a : int = b; b : int : 5;` -- a references b
// before b's own declaration is finalized, exercising C6's park/resume
// across RunAll's retry passes (spec.md §4.3, §9) rather than a single
// linear pass failing on "use before definition".
func ForwardReference(file string) *ast.Block {
	la, lb := loc(file, 1), loc(file, 2)
	blk := &ast.Block{}
	a := global(la, "a", typeIdent(la, "int"), ident(la, "b", blk), 0)
	b := global(lb, "b", typeIdent(lb, "int"), intLit(lb, 5), ast.FlagConstant)
	blk.Declarations = []*ast.Declaration{a, b}
	return blk
}

// CircularDependency builds `x : int : y; y : int : x;` -- two constants
// that can never resolve, exercising RunAll's no-progress termination
// (spec.md §4.3's circular-dependency error).
func CircularDependency(file string) *ast.Block {
	lx, ly := loc(file, 1), loc(file, 2)
	blk := &ast.Block{}
	x := global(lx, "x", typeIdent(lx, "int"), ident(lx, "y", blk), ast.FlagConstant)
	y := global(ly, "y", typeIdent(ly, "int"), ident(ly, "x", blk), ast.FlagConstant)
	blk.Declarations = []*ast.Declaration{x, y}
	return blk
}

// ForeignImport builds a `#foreign` procedure declaration whose library
// name does not resolve to any `#import`, exercising C6's finalization
// rule for foreign declarations (spec.md §4.3, §9).
func ForeignImport(file string) *ast.Block {
	l := loc(file, 1)
	blk := &ast.Block{}
	// libc resolves to a plain non-constant, non-#import declaration: not
	// FlagConstant, so checkIdent leaves ForeignLibraryName as the Ident
	// itself (a constant would get substituted away by its value), and
	// checkForeignLibrary's target.ImportRef == nil check is the one that
	// actually fires -- not an unresolved-name error.
	libc := global(l, "libc", typeIdent(l, "int"), intLit(l, 0), 0)
	libName := ident(l, "libc", blk)
	lambdaType := &ast.TypeDefinition{
		ExprHeader:    ast.ExprHeader{Location: l},
		Kind:          ast.TypeDefLambda,
		ArgumentTypes: nil,
		ReturnType:    typeIdent(l, "void"),
	}
	proc := &ast.Procedure{
		ExprHeader:         ast.ExprHeader{Location: l},
		LambdaType:         lambdaType,
		ForeignLibraryName: libName,
	}
	d := global(l, "puts", nil, proc, ast.FlagProcedure|ast.FlagForeign|ast.FlagConstant)
	blk.Declarations = []*ast.Declaration{libc, d}
	return blk
}

// Scenarios indexes every fixture by name for cmd/jcheck's `run`/`list`
// subcommands.
var Scenarios = map[string]func(file string) *ast.Block{
	"fixed-array-to-slice":     FixedArrayToSlice,
	"integer-range-overflow":   IntegerRangeOverflow,
	"constant-fold-refinalize": ConstantFoldRefinalize,
	"forward-reference":        ForwardReference,
	"circular-dependency":      CircularDependency,
	"foreign-import":           ForeignImport,
}

// Sources holds the hand-written text each fixture's Locations point into,
// purely so diag's excerpts have something to print for a demo run --
// these strings are never lexed or parsed, the fixtures above already are
// the parsed result.
var Sources = map[string]string{
	"fixed-array-to-slice":     "a : [3] int = .{1, 2, 3};\nb : [] int = a;",
	"integer-range-overflow":   "y : u8 = 300;",
	"constant-fold-refinalize": "y : u8 = 3 + 4;",
	"forward-reference":        "a : int = b;\nb : int : 5;",
	"circular-dependency":      "x : int : y;\ny : int : x;",
	"foreign-import":           "libc : int = 0;\nputs :: () #foreign libc;",
}
