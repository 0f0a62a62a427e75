package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreePrinter receives a tree as a sequence of fields, each on its own line,
// with StartChild and EndChild bracketing nested subtrees.
type TreePrinter interface {
	StartField()
	EndField()
	StartChild()
	EndChild()
	Printf(format string, args ...interface{})
}

// textTreePrinter writes one field per line, indenting children.
type textTreePrinter struct {
	out    io.Writer
	indent string
	level  int
	err    error
}

func newTextTreePrinter(out io.Writer) *textTreePrinter {
	return &textTreePrinter{out: out, indent: "\t"}
}

func (tp *textTreePrinter) StartField() {
	tp.write(strings.Repeat(tp.indent, tp.level))
}

func (tp *textTreePrinter) EndField()   { tp.write("\n") }
func (tp *textTreePrinter) StartChild() { tp.level++ }
func (tp *textTreePrinter) EndChild()   { tp.level-- }

func (tp *textTreePrinter) Printf(format string, args ...interface{}) {
	tp.write(fmt.Sprintf(format, args...))
}

// Err returns the first write error.
func (tp *textTreePrinter) Err() error { return tp.err }

func (tp *textTreePrinter) write(s string) {
	if tp.err == nil {
		_, tp.err = io.WriteString(tp.out, s)
	}
}

var (
	dumpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dumpKindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")).Bold(true)
)

type treeDumper struct {
	tp     TreePrinter
	styled bool
}

func (d treeDumper) field(key, format string, args ...interface{}) {
	d.tp.StartField()
	d.tp.Printf("%s = ", d.styleKey(key))
	d.tp.Printf(format, args...)
	d.tp.EndField()
}

func (d treeDumper) kind(key, kind string) {
	if d.styled {
		kind = dumpKindStyle.Render(kind)
	}
	d.field(key, "%s", kind)
}

// dumpToken prints one token's kind and payload.
func (d treeDumper) dumpToken(tok Token) {
	d.kind("token", tok.Kind.String())
	switch tok.Kind {
	case TokenAssign:
		d.field("reassign", "%v", tok.Reassign)
	case TokenKeyword:
		d.field("keyword", "%v", tok.Keyword)
	case TokenIdent:
		d.field("name", "%s", tok.Name)
	case TokenNumber:
		d.field("value", "%d", tok.Value.Value)
	}
}

// dumpOp is one pending action of an iterative tree dump.
type dumpOp struct {
	key   string
	node  Node
	value string
	end   bool
}

// dumpNode prints a node tree depth first. The traversal keeps its own stack
// so that arbitrarily deep programs dump without recursion.
func (d treeDumper) dumpNode(root Node) {
	stack := []dumpOp{{node: root}}
	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case op.end:
			d.tp.EndChild()

		case op.key != "" && op.node != nil:
			d.tp.StartField()
			d.tp.Printf("%s =", d.styleKey(op.key))
			d.tp.EndField()
			d.tp.StartChild()
			stack = append(stack, dumpOp{end: true}, dumpOp{node: op.node})

		case op.key != "":
			d.field(op.key, "%s", op.value)

		case op.node != nil:
			ops := nodeFields(op.node)
			d.kind("node", op.node.nodeKind())
			for i := len(ops) - 1; i >= 0; i-- {
				stack = append(stack, ops[i])
			}
		}
	}
}

func (d treeDumper) styleKey(key string) string {
	if d.styled {
		return dumpKeyStyle.Render(key)
	}
	return key
}

func nodeFields(node Node) []dumpOp {
	val := func(key, format string, args ...interface{}) dumpOp {
		return dumpOp{key: key, value: fmt.Sprintf(format, args...)}
	}
	child := func(key string, n Node) dumpOp {
		return dumpOp{key: key, node: n}
	}
	children := func(ops []dumpOp, key string, ns []Node) []dumpOp {
		ops = append(ops, val(key+".length", "%d", len(ns)))
		for i, n := range ns {
			ops = append(ops, child(fmt.Sprintf("%s[%d]", key, i), n))
		}
		return ops
	}

	switch n := node.(type) {
	case *Literal:
		return []dumpOp{val("value", "%v", n.Value)}
	case *Variable:
		return []dumpOp{val("name", "%s", n.Name)}
	case *Assign:
		return []dumpOp{val("name", "%s", n.Name), child("rhs", n.Value)}
	case *Reassign:
		return []dumpOp{val("name", "%s", n.Name), child("rhs", n.Value)}
	case *StatementList:
		return children(nil, "stmts", n.Stmts)
	case *LoopWhile:
		return []dumpOp{child("condition", n.Cond), child("body", n.Body)}
	case *CondIf:
		return []dumpOp{child("condition", n.Cond), child("body", n.Body)}
	case *Apply:
		return children([]dumpOp{val("func", "%s", n.Func.Name)}, "args", n.Args)
	case *FunctionDef:
		ops := []dumpOp{
			val("name", "%s", n.Name),
			val("params", "%s", strings.Join(n.Params, ", ")),
		}
		return append(ops, child("body", n.Body))
	case *FunctionCall:
		return children([]dumpOp{val("name", "%s", n.Name)}, "args", n.Args)
	}
	return nil
}

// DumpNode prints a node tree through tp; styled adds terminal colors.
func DumpNode(tp TreePrinter, root Node, styled bool) {
	treeDumper{tp, styled}.dumpNode(root)
}

// DumpToken prints a token through tp; styled adds terminal colors.
func DumpToken(tp TreePrinter, tok Token, styled bool) {
	treeDumper{tp, styled}.dumpToken(tok)
}

// interpDumper describes interpreter state, for diagnosing a halted run.
type interpDumper struct {
	in  *Interp
	out io.Writer
}

func (dump interpDumper) dump() {
	fmt.Fprintf(dump.out, "# Interp Dump\n")
	fmt.Fprintf(dump.out, "  steps: %v\n", dump.in.steps)
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.stackKinds())
	for i, fr := range dump.in.scopes.frames {
		mark := " "
		if i == dump.in.scopes.base {
			mark = "*"
		}
		fmt.Fprintf(dump.out, " %s scope[%d]:", mark, i)
		for _, b := range fr {
			fmt.Fprintf(dump.out, " %s=%v", b.name, b.value)
		}
		fmt.Fprintf(dump.out, "\n")
	}
	for _, def := range dump.in.funcs {
		fmt.Fprintf(dump.out, "  function %s(%s)\n", def.Name, strings.Join(def.Params, ", "))
	}
	if dump.in.in != nil {
		fmt.Fprintf(dump.out, "  input buffered: %v bits\n", dump.in.in.Buffered())
	}
	if dump.in.out != nil {
		fmt.Fprintf(dump.out, "  output pending: %v bits\n", dump.in.out.Pending())
	}
}

func (dump interpDumper) stackKinds() []string {
	kinds := make([]string, len(dump.in.stack))
	for i, f := range dump.in.stack {
		kinds[i] = f.node.nodeKind()
	}
	return kinds
}
