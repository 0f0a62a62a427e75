package main

// Node is an expression tree node. The set of implementations is closed; the
// evaluator and dumper switch over them exhaustively.
type Node interface {
	nodeKind() string
}

type (
	// Literal is a numeric constant.
	Literal struct{ Value WidthInt }

	// Variable references a binding by name.
	Variable struct{ Name string }

	// Assign binds Name in the innermost scope frame.
	Assign struct {
		Name  string
		Value Node
	}

	// Reassign updates Name wherever it is visible, or binds it in the
	// outermost frame when it is not.
	Reassign struct {
		Name  string
		Value Node
	}

	// StatementList evaluates to its last statement, or the zero value when
	// empty.
	StatementList struct{ Stmts []Node }

	LoopWhile struct{ Cond, Body Node }

	CondIf struct{ Cond, Body Node }

	// Apply invokes a builtin; len(Args) always matches its arity.
	Apply struct {
		Func *Builtin
		Args []Node
	}

	// FunctionDef registers a user function when evaluated.
	FunctionDef struct {
		Name   string
		Params []string
		Body   Node
	}

	// FunctionCall invokes a user function, resolved by name at run time.
	FunctionCall struct {
		Name string
		Args []Node
	}
)

func (*Literal) nodeKind() string       { return "Literal" }
func (*Variable) nodeKind() string      { return "Variable" }
func (*Assign) nodeKind() string        { return "Assign" }
func (*Reassign) nodeKind() string      { return "Reassign" }
func (*StatementList) nodeKind() string { return "StatementList" }
func (*LoopWhile) nodeKind() string     { return "LoopWhile" }
func (*CondIf) nodeKind() string        { return "CondIf" }
func (*Apply) nodeKind() string         { return "Apply" }
func (*FunctionDef) nodeKind() string   { return "FunctionDef" }
func (*FunctionCall) nodeKind() string  { return "FunctionCall" }
