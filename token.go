package main

import "fmt"

// TokenKind discriminates Token variants.
type TokenKind int

const (
	TokenLParen TokenKind = iota
	TokenRParen
	TokenAssign
	TokenComma
	TokenSemicolon
	TokenKeyword
	TokenIdent
	TokenNumber

	// TokenEOF marks the end of input; the lexer never produces it.
	TokenEOF
)

var tokenKindNames = [...]string{
	TokenLParen:    "LParen",
	TokenRParen:    "RParen",
	TokenAssign:    "Assign",
	TokenComma:     "Comma",
	TokenSemicolon: "Semicolon",
	TokenKeyword:   "Keyword",
	TokenIdent:     "Identifier",
	TokenNumber:    "Number",
	TokenEOF:       "EOF",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Keyword names a reserved word.
type Keyword int

const (
	KeywordWhile Keyword = iota
	KeywordIf
	KeywordFunction
	KeywordCall
)

var keywords = map[string]Keyword{
	"while":    KeywordWhile,
	"if":       KeywordIf,
	"function": KeywordFunction,
	"call":     KeywordCall,
}

var keywordNames = [...]string{
	KeywordWhile:    "while",
	KeywordIf:       "if",
	KeywordFunction: "function",
	KeywordCall:     "call",
}

func (kw Keyword) String() string {
	if kw >= 0 && int(kw) < len(keywordNames) {
		return keywordNames[kw]
	}
	return fmt.Sprintf("Keyword(%d)", int(kw))
}

// Token is one lexical unit; which payload field is meaningful depends on Kind.
type Token struct {
	Kind     TokenKind
	Reassign bool     // TokenAssign: ":=" rather than "="
	Keyword  Keyword  // TokenKeyword
	Name     string   // TokenIdent
	Value    WidthInt // TokenNumber, always width 64
}

func (tok Token) String() string {
	switch tok.Kind {
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenSemicolon:
		return "';'"
	case TokenAssign:
		if tok.Reassign {
			return "':='"
		}
		return "'='"
	case TokenKeyword:
		return fmt.Sprintf("keyword %q", tok.Keyword.String())
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Name)
	case TokenNumber:
		return fmt.Sprintf("number %d", tok.Value.Value)
	case TokenEOF:
		return "end of input"
	}
	return tok.Kind.String()
}
