package main

import (
	"go.uber.org/zap"
)

type frameKind int

const (
	// frameProgram collects ';' separated statements until end of input.
	frameProgram frameKind = iota

	// frameParen collects ';' separated statements until ')'.
	frameParen

	// frameArgs collects one argument, ending at ',' or ')'.
	frameArgs

	// frameStatement collects a single statement: an assignment's value or a
	// construct body. It ends before any terminator, leaving it for the
	// enclosing frame.
	frameStatement
)

var frameKindNames = [...]string{
	frameProgram:   "program",
	frameParen:     "paren",
	frameArgs:      "args",
	frameStatement: "statement",
}

func (k frameKind) String() string { return frameKindNames[k] }

type wantState int

const (
	wantNothing wantState = iota
	wantName
	wantParen
)

// parseFrame is one level of the explicit parse stack. A frame gathers at
// most one operand at a time; when the operand is part of a larger construct,
// the construct waits in building until the frame pushed for its next piece
// closes and resumes it.
type parseFrame struct {
	kind frameKind

	pending string // identifier awaiting '(', '=' or a terminator
	operand Node
	list    *StatementList

	building Node
	phase    int
	want     wantState
}

func (f *parseFrame) empty() bool { return f.pending == "" && f.operand == nil }

func (f *parseFrame) settle() {
	if f.pending != "" {
		f.operand = &Variable{Name: f.pending}
		f.pending = ""
	}
}

func (f *parseFrame) endStatement() {
	if f.list == nil {
		f.list = &StatementList{}
	}
	if f.operand != nil {
		f.list.Stmts = append(f.list.Stmts, f.operand)
		f.operand = nil
	}
}

func (f *parseFrame) result() Node {
	if f.list != nil {
		f.endStatement()
		return f.list
	}
	return f.operand
}

func (f *parseFrame) complete() {
	f.operand = f.building
	f.building = nil
	f.phase = 0
}

// Parser builds an expression tree from source fed in arbitrary chunks.
// Parsing never recurses; nesting lives on an explicit frame stack so that
// any chunk boundary can suspend it.
type Parser struct {
	lex   Lexer
	stack []*parseFrame
	root  Node
	err   error
	log   *zap.Logger
}

// NewParser creates a parser; log may be nil.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		stack: []*parseFrame{{kind: frameProgram}},
		log:   log,
	}
}

// Feed parses as much of src as can be decided without further input.
func (p *Parser) Feed(src []byte) error {
	if p.err != nil {
		return p.err
	}
	if len(p.stack) == 0 {
		p.err = parseError(ErrSyntax, "source fed after end")
		return p.err
	}
	if p.err = p.lex.Feed(src); p.err == nil {
		p.err = p.drain()
	}
	if ce := p.log.Check(zap.DebugLevel, "fed"); ce != nil {
		ce.Write(zap.Int("bytes", len(src)), zap.Bool("partial", p.lex.pending()))
	}
	return p.err
}

// End finishes parsing and returns the program tree. An empty program is an
// empty StatementList.
func (p *Parser) End() (Node, error) {
	if p.err == nil && len(p.stack) > 0 {
		if p.err = p.lex.End(); p.err == nil {
			p.err = p.drain()
		}
		if p.err == nil {
			p.err = p.handle(Token{Kind: TokenEOF})
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.root, nil
}

func (p *Parser) drain() error {
	for p.lex.HasToken() {
		if err := p.handle(p.lex.Take()); err != nil {
			return err
		}
	}
	return p.lex.Err()
}

func (p *Parser) top() *parseFrame { return p.stack[len(p.stack)-1] }

func (p *Parser) push(kind frameKind) {
	p.stack = append(p.stack, &parseFrame{kind: kind})
}

func (p *Parser) pop() *parseFrame {
	i := len(p.stack) - 1
	f := p.stack[i]
	p.stack[i] = nil
	p.stack = p.stack[:i]
	return f
}

func (p *Parser) handle(tok Token) error {
	if ce := p.log.Check(zap.DebugLevel, "parse"); ce != nil {
		ce.Write(
			zap.Stringer("token", tok),
			zap.Stringer("frame", p.top().kind),
			zap.Int("depth", len(p.stack)),
		)
	}

	for {
		f := p.top()

		if f.want != wantNothing {
			return p.wanted(f, tok)
		}

		switch tok.Kind {
		case TokenIdent:
			if !f.empty() {
				return unexpected(tok)
			}
			f.pending = tok.Name
			return nil

		case TokenNumber:
			if !f.empty() {
				return unexpected(tok)
			}
			f.operand = &Literal{Value: tok.Value}
			return nil

		case TokenKeyword:
			if !f.empty() {
				return unexpected(tok)
			}
			switch tok.Keyword {
			case KeywordWhile:
				f.building, f.want = &LoopWhile{}, wantParen
			case KeywordIf:
				f.building, f.want = &CondIf{}, wantParen
			case KeywordFunction:
				f.building, f.want = &FunctionDef{}, wantName
			case KeywordCall:
				f.building, f.want = &FunctionCall{}, wantName
			}
			return nil

		case TokenAssign:
			if f.pending == "" || f.operand != nil {
				return parseError(ErrSyntax, "assignment without a variable name")
			}
			if tok.Reassign {
				f.building = &Reassign{Name: f.pending}
			} else {
				f.building = &Assign{Name: f.pending}
			}
			f.pending = ""
			p.push(frameStatement)
			return nil

		case TokenLParen:
			if f.pending != "" {
				fn := LookupBuiltin(f.pending)
				if fn == nil {
					return parseError(ErrUnknownBuiltin, "%q", f.pending)
				}
				f.building = &Apply{Func: fn}
				f.pending = ""
				p.push(frameArgs)
				return nil
			}
			if !f.empty() {
				return unexpected(tok)
			}
			p.push(frameParen)
			return nil
		}

		// tok terminates something; frames that end before a terminator
		// close and hand it on to their parent.
		f.settle()
		consumed, err := p.terminate(f, tok)
		if consumed || err != nil {
			return err
		}
	}
}

func (p *Parser) wanted(f *parseFrame, tok Token) error {
	switch f.want {
	case wantName:
		if tok.Kind != TokenIdent {
			return parseError(ErrSyntax, "expected function name, got %v", tok)
		}
		switch b := f.building.(type) {
		case *FunctionDef:
			b.Name = tok.Name
		case *FunctionCall:
			b.Name = tok.Name
		}
		f.want = wantParen
		return nil

	case wantParen:
		if tok.Kind != TokenLParen {
			return parseError(ErrSyntax, "expected '(', got %v", tok)
		}
		f.want = wantNothing
		switch f.building.(type) {
		case *LoopWhile, *CondIf:
			p.push(frameParen)
		default:
			p.push(frameArgs)
		}
		return nil
	}
	return nil
}

func (p *Parser) terminate(f *parseFrame, tok Token) (consumed bool, err error) {
	switch f.kind {
	case frameProgram:
		switch tok.Kind {
		case TokenSemicolon:
			f.endStatement()
			return true, nil
		case TokenEOF:
			p.root = f.result()
			if p.root == nil {
				p.root = &StatementList{}
			}
			p.pop()
			return true, nil
		}

	case frameParen:
		switch tok.Kind {
		case TokenSemicolon:
			f.endStatement()
			return true, nil
		case TokenRParen:
			p.pop()
			return true, p.resume(f.result(), tok)
		case TokenEOF:
			return true, parseError(ErrSyntax, "unclosed '(' at end of input")
		}

	case frameArgs:
		switch tok.Kind {
		case TokenComma, TokenRParen:
			p.pop()
			return true, p.resume(f.operand, tok)
		case TokenEOF:
			return true, parseError(ErrSyntax, "unclosed argument list at end of input")
		}

	case frameStatement:
		p.pop()
		return false, p.resume(f.operand, tok)
	}
	return true, unexpected(tok)
}

// resume hands the result of a closed child frame to the construct waiting
// in its parent; term is the token that closed the child.
func (p *Parser) resume(result Node, term Token) error {
	f := p.top()
	switch b := f.building.(type) {
	case nil:
		if result == nil {
			result = &StatementList{}
		}
		f.operand = result

	case *Assign:
		if result == nil {
			return parseError(ErrSyntax, "assignment to %q has no value", b.Name)
		}
		b.Value = result
		f.complete()

	case *Reassign:
		if result == nil {
			return parseError(ErrSyntax, "assignment to %q has no value", b.Name)
		}
		b.Value = result
		f.complete()

	case *Apply:
		args, err := appendArg(b.Args, result, term)
		if err != nil {
			return err
		}
		b.Args = args
		if arity := len(b.Func.Params); len(b.Args) > arity ||
			term.Kind == TokenRParen && len(b.Args) != arity {
			return parseError(ErrArity, "%v takes %d argument(s)", b.Func.Name, arity)
		}
		if term.Kind == TokenComma {
			p.push(frameArgs)
		} else {
			f.complete()
		}

	case *FunctionCall:
		args, err := appendArg(b.Args, result, term)
		if err != nil {
			return err
		}
		b.Args = args
		if term.Kind == TokenComma {
			p.push(frameArgs)
		} else {
			f.complete()
		}

	case *FunctionDef:
		if f.phase == 1 {
			b.Body = orEmpty(result)
			f.complete()
			break
		}
		if result != nil {
			v, ok := result.(*Variable)
			if !ok {
				return parseError(ErrSyntax, "parameter of %q must be a plain name, got %v", b.Name, result.nodeKind())
			}
			b.Params = append(b.Params, v.Name)
		} else if term.Kind == TokenComma || len(b.Params) > 0 {
			return parseError(ErrSyntax, "empty parameter in definition of %q", b.Name)
		}
		if term.Kind == TokenComma {
			p.push(frameArgs)
		} else {
			f.phase = 1
			p.push(frameStatement)
		}

	case *LoopWhile:
		if f.phase == 0 {
			b.Cond = orEmpty(result)
			f.phase = 1
			p.push(frameStatement)
		} else {
			b.Body = orEmpty(result)
			f.complete()
		}

	case *CondIf:
		if f.phase == 0 {
			b.Cond = orEmpty(result)
			f.phase = 1
			p.push(frameStatement)
		} else {
			b.Body = orEmpty(result)
			f.complete()
		}
	}
	return nil
}

// appendArg adds one argument; a missing argument is only valid as the whole
// of an empty list.
func appendArg(args []Node, arg Node, term Token) ([]Node, error) {
	if arg != nil {
		return append(args, arg), nil
	}
	if term.Kind == TokenRParen && len(args) == 0 {
		return args, nil
	}
	return nil, parseError(ErrSyntax, "empty argument before %v", term)
}

func orEmpty(n Node) Node {
	if n == nil {
		return &StatementList{}
	}
	return n
}

func unexpected(tok Token) error {
	return parseError(ErrSyntax, "unexpected %v", tok)
}
