package ast

// Slot is an addressable location holding an Expr: a struct field, a slice
// element, or anything else that can be read and overwritten in place. It
// generalizes the teacher's `Substitute(ptr **node.Node, with node.Node)`
// pointer-rewrite macro (spec.md §4.2/§4.6 need to replace, say, a Binary
// node with its folded Number result, or an untyped int literal with a
// float64 one, in whatever field or slice element currently holds it)
// without requiring Go's type system to expose `**Expr` uniformly across
// every possible container -- a closure pair does that job instead.
type Slot interface {
	Get() Expr
	Set(Expr)
}

type closureSlot struct {
	get func() Expr
	set func(Expr)
}

func (s closureSlot) Get() Expr  { return s.get() }
func (s closureSlot) Set(e Expr) { s.set(e) }

// SlotOf builds a Slot from a getter/setter pair, typically a pair of
// closures over a specific struct field or slice index, e.g.:
//
//	ast.SlotOf(func() ast.Expr { return n.Left }, func(e ast.Expr) { n.Left = e })
func SlotOf(get func() Expr, set func(Expr)) Slot {
	return closureSlot{get: get, set: set}
}

// Substitute overwrites slot's current expression with with, and returns
// with -- the Go analogue of the teacher's `Substitute(ptr, expr)` macro,
// used throughout check/expr.go and check/convert.go whenever a node
// rewrites itself (constant folding, implicit array-to-slice promotion,
// comptime literal finalization).
func Substitute(slot Slot, with Expr) Expr {
	slot.Set(with)
	return with
}

// WorkItem is one post-order entry produced by flatten.Flatten: an
// expression slot to typecheck, a statement to typecheck directly (the
// statement kinds -- Block, If, While, For, Return, ... -- are typechecked
// as a unit once their child expressions are already done, rather than
// being decomposed into sub-slots), or a hook. Exactly one of
// slot/stmt/hook is set, which is why WorkItem is built only via
// ExprWork/StmtWork/HookWork rather than letting callers populate more
// than one field -- spec.md's own emphasis on small, purpose-built node
// variants over loosely typed grab-bag structs.
//
// HookWork exists for exactly one case the post-order expression/statement
// split can't express on its own: a For loop's iterator declaration has no
// Type/Value of its own to flatten -- its type is derived from Range once
// Range finishes, strictly before Body's identifiers can reference it
// (spec.md §4.5). flatten emits a hook between Range's and Body's work
// items to perform that derivation at exactly the right point in the
// sequence.
type WorkItem struct {
	slot Slot
	stmt Statement
	hook func() error
}

func ExprWork(s Slot) WorkItem      { return WorkItem{slot: s} }
func StmtWork(s Statement) WorkItem { return WorkItem{stmt: s} }
func HookWork(f func() error) WorkItem { return WorkItem{hook: f} }

func (w WorkItem) IsExpr() bool         { return w.slot != nil }
func (w WorkItem) IsHook() bool         { return w.hook != nil }
func (w WorkItem) Slot() Slot           { return w.slot }
func (w WorkItem) Statement() Statement { return w.stmt }
func (w WorkItem) Hook() func() error   { return w.hook }
