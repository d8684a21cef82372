package types

// Registry holds one canonical *Type per builtin so that Equal's identity
// shortcut (x == y) works for every builtin comparison, exactly the role the
// teacher's package-level typeBool/typeInt/typeChar vars played for C0's
// fixed builtin set, generalized to spec.md §3's larger builtin set (sized
// integers, both float widths, the three comptime literal types, and the
// meta-type `Type` itself).
type Registry struct {
	Int     *Type
	U8      *Type
	U16     *Type
	U32     *Type
	U64     *Type
	S8      *Type
	S16     *Type
	S32     *Type
	S64     *Type
	Float   *Type
	Float64 *Type
	Bool    *Type
	String  *Type
	Void    *Type
	Null    *Type

	// TypeType is the meta-type: the type of a Type_Definition expression
	// once checked (spec.md §4.4).
	TypeType *Type

	// Comptime* are canonical builtins for the comptime literal types. The
	// checker does not assign them: an untyped numeric literal gets
	// int/float/float64 and a string literal gets String until a context
	// finalizes it.
	ComptimeInt    *Type
	ComptimeFloat  *Type
	ComptimeString *Type

	// ImportSentinel is the placeholder int-typed stand-in used for
	// selector-through-import expressions (spec.md §9, open question 2) --
	// kept exactly as buggy/minimal as original_source/typecheck.c's
	// typecheck_selector does it.
	ImportSentinel *Type

	integers map[string]*Type
}

func integer(name string, bits int, signed bool) *Type {
	n := &Type{Kind: KindNumber, Name: name, Size: int64(bits / 8)}
	n.Number.Signed = signed
	if signed {
		high := uint64(1)<<(bits-1) - 1
		low := ^high // two's complement of -(high+1), e.g. all-ones prefix
		n.Number.Low = low
		n.Number.High = high
	} else {
		n.Number.Low = 0
		if bits == 64 {
			n.Number.High = ^uint64(0)
		} else {
			n.Number.High = uint64(1)<<bits - 1
		}
	}
	return n
}

// NewRegistry constructs every canonical builtin exactly once. Two Types
// obtained from the same Registry's builtins are always comparable with ==
// in addition to Equal, since Equal special-cases pointer identity first.
func NewRegistry() *Registry {
	r := &Registry{
		Int:     integer("int", 64, true),
		U8:      integer("u8", 8, false),
		U16:     integer("u16", 16, false),
		U32:     integer("u32", 32, false),
		U64:     integer("u64", 64, false),
		S8:      integer("s8", 8, true),
		S16:     integer("s16", 16, true),
		S32:     integer("s32", 32, true),
		S64:     integer("s64", 64, true),
		Float:   &Type{Kind: KindNumber, Name: "float", Size: 4},
		Float64: &Type{Kind: KindNumber, Name: "float64", Size: 8},
		Bool:    &Type{Kind: KindLiteral, Literal: LiteralBool, Size: 1, Name: "bool"},
		String:  &Type{Kind: KindLiteral, Literal: LiteralString, Size: 16, Name: "string"},
		Void:    &Type{Kind: KindLiteral, Literal: LiteralVoid, Size: 0, Name: "void"},
		Null:    &Type{Kind: KindLiteral, Literal: LiteralNull, Size: 8, Name: "null"},
	}
	r.Float.Number.Float = true
	r.Float64.Number.Float = true
	r.Float64.Number.Float64 = true

	r.TypeType = &Type{Kind: KindLiteral, Literal: LiteralType, Size: 8, Name: "Type"}

	r.ComptimeInt = integer("comptime_int", 64, true)
	r.ComptimeInt.Name = "comptime_int"
	r.ComptimeFloat = &Type{Kind: KindNumber, Name: "comptime_float", Size: 8}
	r.ComptimeFloat.Number.Float = true
	r.ComptimeFloat.Number.Float64 = true
	r.ComptimeString = &Type{Kind: KindLiteral, Literal: LiteralString, Size: 16, Name: "comptime_string"}

	r.ImportSentinel = r.Int

	r.integers = map[string]*Type{
		"int": r.Int,
		"u8":  r.U8,
		"u16": r.U16,
		"u32": r.U32,
		"u64": r.U64,
		"s8":  r.S8,
		"s16": r.S16,
		"s32": r.S32,
		"s64": r.S64,
	}
	return r
}

// Lookup finds a canonical builtin by name, mirroring spec.md §4.4's
// Type_Definition resolution for bare identifier type names. Returns nil if
// name is not a builtin (callers then consult workspace.Scope for a
// user-defined struct/enum/typedef).
func (r *Registry) Lookup(name string) *Type {
	switch name {
	case "bool":
		return r.Bool
	case "string":
		return r.String
	case "void":
		return r.Void
	case "float":
		return r.Float
	case "float64":
		return r.Float64
	case "Type":
		return r.TypeType
	}
	return r.integers[name]
}

// IsBuiltinInteger reports whether name names one of the fixed-width or
// platform integer builtins.
func (r *Registry) IsBuiltinInteger(name string) bool {
	_, ok := r.integers[name]
	return ok
}

// WidestInteger picks the wider of two integer builtins for the promotion
// ladder (spec.md §4.6): ties prefer the signed type, matching
// constant_arithmetic_or_comparison's "prefer signed on equal width" rule.
func (r *Registry) WidestInteger(x, y *Type) *Type {
	if x.Size != y.Size {
		if x.Size > y.Size {
			return x
		}
		return y
	}
	if x.Number.Signed {
		return x
	}
	return y
}
