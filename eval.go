package main

import (
	"context"

	"go.uber.org/zap"
)

// evalFrame is a suspended node evaluation. Child results are written back
// through out into the parent frame, so frames stay heap allocated.
type evalFrame struct {
	node Node
	out  *WidthInt

	pc   int
	i    int
	val  WidthInt
	cond WidthInt
	args []WidthInt

	def   *FunctionDef
	saved int
}

func (in *Interp) eval(ctx context.Context, root Node) WidthInt {
	var result WidthInt
	in.call(root, &result)
	for len(in.stack) > 0 {
		in.haltif(ctx.Err())
		in.step()
	}
	return result
}

// call suspends the current frame until node has been evaluated into out.
func (in *Interp) call(node Node, out *WidthInt) {
	in.stack = append(in.stack, &evalFrame{node: node, out: out})
	if ce := in.log.Check(zap.DebugLevel, "eval"); ce != nil {
		ce.Write(zap.String("node", node.nodeKind()), zap.Int("depth", len(in.stack)))
	}
}

// ret finishes the current frame with v, resuming its parent.
func (in *Interp) ret(v WidthInt) {
	i := len(in.stack) - 1
	f := in.stack[i]
	*f.out = v
	in.stack[i] = nil
	in.stack = in.stack[:i]
	if ce := in.log.Check(zap.DebugLevel, "done"); ce != nil {
		ce.Write(zap.String("node", f.node.nodeKind()), zap.Stringer("value", v), zap.Int("depth", i))
	}
}

func (in *Interp) step() {
	if in.stepLimit != 0 {
		if in.steps++; in.steps > in.stepLimit {
			in.halt(evalError(ErrStepLimit, "after %d steps", in.stepLimit))
		}
	}

	f := in.stack[len(in.stack)-1]
	switch n := f.node.(type) {
	case *Literal:
		in.ret(n.Value)

	case *Variable:
		v, ok := in.scopes.lookup(n.Name)
		if !ok {
			in.halt(evalError(ErrUnboundVariable, "%q", n.Name))
		}
		in.ret(v)

	case *Assign:
		if f.pc == 0 {
			f.pc = 1
			in.call(n.Value, &f.val)
			return
		}
		in.scopes.assign(n.Name, f.val)
		in.ret(f.val)

	case *Reassign:
		if f.pc == 0 {
			f.pc = 1
			in.call(n.Value, &f.val)
			return
		}
		in.scopes.reassign(n.Name, f.val)
		in.ret(f.val)

	case *StatementList:
		if f.i < len(n.Stmts) {
			f.i++
			in.call(n.Stmts[f.i-1], &f.val)
			return
		}
		in.ret(f.val)

	case *LoopWhile:
		switch f.pc {
		case 0:
			in.scopes.push()
			f.pc = 1
			in.call(n.Cond, &f.cond)
		case 1:
			if !f.cond.Truthy() {
				in.scopes.pop()
				in.ret(f.val)
				return
			}
			f.pc = 2
			in.call(n.Body, &f.val)
		case 2:
			f.pc = 1
			in.call(n.Cond, &f.cond)
		}

	case *CondIf:
		switch f.pc {
		case 0:
			in.scopes.push()
			f.pc = 1
			in.call(n.Cond, &f.cond)
		case 1:
			if !f.cond.Truthy() {
				in.scopes.pop()
				in.ret(WidthInt{})
				return
			}
			f.pc = 2
			in.call(n.Body, &f.val)
		case 2:
			in.scopes.pop()
			in.ret(f.val)
		}

	case *Apply:
		if len(n.Args) != len(n.Func.Params) {
			in.halt(evalError(ErrArity, "%v takes %d argument(s), got %d",
				n.Func.Name, len(n.Func.Params), len(n.Args)))
		}
		if in.evalArgs(f, n.Args) {
			return
		}
		in.scopes.push()
		v := n.Func.impl(in, f.args)
		in.scopes.pop()
		in.ret(v)

	case *FunctionDef:
		in.funcs.define(n)
		in.ret(WidthInt{})

	case *FunctionCall:
		switch f.pc {
		case 0:
			f.def = in.funcs.lookup(n.Name)
			if f.def == nil {
				in.halt(evalError(ErrUndefinedFunction, "%q", n.Name))
			}
			if len(f.def.Params) != len(n.Args) {
				in.halt(evalError(ErrArity, "function %q takes %d argument(s), got %d",
					n.Name, len(f.def.Params), len(n.Args)))
			}
			f.pc = 1
			fallthrough
		case 1:
			if in.evalArgs(f, n.Args) {
				return
			}
			f.saved = in.scopes.enter(f.def.Params, f.args)
			f.pc = 2
			in.call(f.def.Body, &f.val)
		case 2:
			in.scopes.leave(f.saved)
			in.ret(f.val)
		}
	}
}

// evalArgs schedules the next unevaluated argument of f, reporting false
// once all of them are in f.args.
func (in *Interp) evalArgs(f *evalFrame, args []Node) bool {
	if f.i >= len(args) {
		return false
	}
	if f.args == nil {
		f.args = make([]WidthInt, len(args))
	}
	f.i++
	in.call(args[f.i-1], &f.args[f.i-1])
	return true
}
