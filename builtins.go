package main

import "sort"

// Builtin is a primitive operation with a fixed parameter list.
type Builtin struct {
	Name   string
	Params []string
	impl   func(in *Interp, args []WidthInt) WidthInt
}

var (
	unary  = []string{"value"}
	lhsRhs = []string{"lhs", "rhs"}
	resize = []string{"new_width", "value"}
)

var builtins = []*Builtin{
	{"read", []string{"amount"}, func(in *Interp, args []WidthInt) WidthInt {
		return in.readBits(args[0].Value)
	}},
	{"write", unary, func(in *Interp, args []WidthInt) WidthInt {
		in.writeBits(args[0])
		return WidthInt{}
	}},
	{"readeof", nil, func(in *Interp, args []WidthInt) WidthInt {
		return Bool(in.readEOF())
	}},

	{"not", unary, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(!args[0].Truthy())
	}},
	{"and", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Truthy() && args[1].Truthy())
	}},
	{"or", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Truthy() || args[1].Truthy())
	}},
	{"xor", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Truthy() != args[1].Truthy())
	}},

	{"bit_not", unary, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(args[0].Width, ^args[0].Value)
	}},
	{"bit_and", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(min(args[0].Width, args[1].Width), args[0].Value&args[1].Value)
	}},
	{"bit_or", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(max(args[0].Width, args[1].Width), args[0].Value|args[1].Value)
	}},
	{"bit_xor", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(max(args[0].Width, args[1].Width), args[0].Value^args[1].Value)
	}},
	{"shl", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(args[0].Width, args[0].Value<<args[1].Value)
	}},
	{"shr", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(args[0].Width, args[0].Value>>args[1].Value)
	}},
	{"width", resize, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(args[0].Value, args[1].Value)
	}},
	{"sig_width", resize, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(args[0].Value, uint64(args[1].Signed()))
	}},

	{"add", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(max(args[0].Width, args[1].Width), args[0].Value+args[1].Value)
	}},
	{"sub", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(max(args[0].Width, args[1].Width), args[0].Value-args[1].Value)
	}},
	{"mul", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Int(max(args[0].Width, args[1].Width), args[0].Value*args[1].Value)
	}},
	{"div", lhsRhs, func(in *Interp, args []WidthInt) WidthInt {
		if args[1].Value == 0 {
			in.halt(evalError(ErrDivideByZero, "div(%v, %v)", args[0], args[1]))
		}
		return Int(args[0].Width, args[0].Value/args[1].Value)
	}},
	{"sig_div", lhsRhs, func(in *Interp, args []WidthInt) WidthInt {
		d := args[1].Signed()
		if d == 0 {
			in.halt(evalError(ErrDivideByZero, "sig_div(%v, %v)", args[0], args[1]))
		}
		return Int(args[0].Width, uint64(args[0].Signed()/d))
	}},

	{"lt", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Value < args[1].Value)
	}},
	{"gt", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Value > args[1].Value)
	}},
	{"le", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Value <= args[1].Value)
	}},
	{"ge", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Value >= args[1].Value)
	}},
	{"sig_lt", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Signed() < args[1].Signed())
	}},
	{"sig_gt", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Signed() > args[1].Signed())
	}},
	{"sig_le", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Signed() <= args[1].Signed())
	}},
	{"sig_ge", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Signed() >= args[1].Signed())
	}},
	{"eq", lhsRhs, func(_ *Interp, args []WidthInt) WidthInt {
		return Bool(args[0].Value == args[1].Value)
	}},
}

var builtinsByName = func() map[string]*Builtin {
	byName := make(map[string]*Builtin, len(builtins))
	for _, b := range builtins {
		byName[b.Name] = b
	}
	return byName
}()

// LookupBuiltin returns the named builtin, or nil.
func LookupBuiltin(name string) *Builtin { return builtinsByName[name] }

// BuiltinNames returns every builtin name in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}
