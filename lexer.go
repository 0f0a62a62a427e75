package main

import (
	"strconv"
	"strings"

	"github.com/jcorbin/bitstreamop/internal/runeio"
)

type lexState int

const (
	lexNormal lexState = iota
	lexColon
	lexIdent
	lexNumber
)

// Lexer turns source bytes, fed in chunks of any size, into Tokens.
//
// At most one token is held at a time; Take hands it over and scans for the
// next. A word touching the end of the fed input stays unresolved until a
// delimiter arrives or End is called.
type Lexer struct {
	buf   []byte
	pos   int
	start int
	state lexState
	ended bool

	token Token
	has   bool
	err   error
}

// Feed appends source bytes and tries to complete a token.
func (lx *Lexer) Feed(p []byte) error {
	if lx.err != nil {
		return lx.err
	}
	if lx.ended {
		lx.err = lexError("input fed after end")
		return lx.err
	}
	lx.compact()
	lx.buf = append(lx.buf, p...)
	lx.scan()
	return lx.err
}

// End marks that no more bytes will arrive, finalizing any trailing word.
func (lx *Lexer) End() error {
	lx.ended = true
	lx.scan()
	return lx.err
}

// HasToken reports whether a completed token is ready.
func (lx *Lexer) HasToken() bool { return lx.has }

// Take returns the ready token and scans ahead for the next one; any error
// from that scan is reported by Err.
func (lx *Lexer) Take() Token {
	tok := lx.token
	lx.token, lx.has = Token{}, false
	lx.scan()
	return tok
}

// Err returns the first lexical error encountered.
func (lx *Lexer) Err() error { return lx.err }

// pending reports whether unresolved input remains buffered.
func (lx *Lexer) pending() bool {
	return lx.state != lexNormal || lx.pos < len(lx.buf)
}

func (lx *Lexer) compact() {
	keep := lx.pos
	if lx.state == lexIdent || lx.state == lexNumber {
		keep = lx.start
	}
	if keep == 0 {
		return
	}
	n := copy(lx.buf, lx.buf[keep:])
	lx.buf = lx.buf[:n]
	lx.pos -= keep
	lx.start -= keep
}

func (lx *Lexer) emit(tok Token) {
	lx.token, lx.has = tok, true
	lx.state = lexNormal
}

func (lx *Lexer) scan() {
	for !lx.has && lx.err == nil {
		switch lx.state {
		case lexNormal:
			if lx.pos >= len(lx.buf) {
				return
			}
			c := lx.buf[lx.pos]
			switch classify(c) {
			case classSpace:
				lx.pos++
			case classAlpha:
				lx.state, lx.start = lexIdent, lx.pos
				lx.pos++
			case classDigit:
				lx.state, lx.start = lexNumber, lx.pos
				lx.pos++
			case classPunct:
				lx.punct(c)
			default:
				lx.err = lexError("unexpected byte %v", runeio.Describe(c))
			}

		case lexColon:
			if lx.pos >= len(lx.buf) {
				if lx.ended {
					lx.err = lexError("expected '=' after ':', got end of input")
				}
				return
			}
			if c := lx.buf[lx.pos]; c != '=' {
				lx.err = lexError("expected '=' after ':', got %v", runeio.Describe(c))
				return
			}
			lx.pos++
			lx.emit(Token{Kind: TokenAssign, Reassign: true})

		case lexIdent, lexNumber:
			for lx.pos < len(lx.buf) && isWordByte(lx.buf[lx.pos]) {
				lx.pos++
			}
			if lx.pos >= len(lx.buf) && !lx.ended {
				return
			}
			lx.word(string(lx.buf[lx.start:lx.pos]))
		}
	}
}

func (lx *Lexer) punct(c byte) {
	lx.pos++
	switch c {
	case '(':
		lx.emit(Token{Kind: TokenLParen})
	case ')':
		lx.emit(Token{Kind: TokenRParen})
	case '=':
		lx.emit(Token{Kind: TokenAssign})
	case ',':
		lx.emit(Token{Kind: TokenComma})
	case ';':
		lx.emit(Token{Kind: TokenSemicolon})
	case ':':
		lx.state = lexColon
	default:
		lx.err = lexError("unexpected punctuation %v", runeio.Describe(c))
	}
}

func (lx *Lexer) word(word string) {
	if lx.state == lexNumber {
		val, err := parseNumber(word)
		if err != nil {
			lx.err = err
			return
		}
		lx.emit(Token{Kind: TokenNumber, Value: val})
	} else if kw, isKeyword := keywords[word]; isKeyword {
		lx.emit(Token{Kind: TokenKeyword, Keyword: kw})
	} else {
		lx.emit(Token{Kind: TokenIdent, Name: word})
	}
}

// parseNumber reads a numeric literal: leading zeros, then an optional base
// prefix (d, o, b or x in either case), then digits in that base.
func parseNumber(word string) (WidthInt, error) {
	s := strings.TrimLeft(word, "0")
	base := 10
	if s != "" {
		switch s[0] {
		case 'd', 'D':
			base, s = 10, s[1:]
		case 'o', 'O':
			base, s = 8, s[1:]
		case 'b', 'B':
			base, s = 2, s[1:]
		case 'x', 'X':
			base, s = 16, s[1:]
		}
	}

	i := 0
	for i < len(s) && digitValue(s[i]) < base {
		i++
	}
	if i < len(s) {
		return WidthInt{}, lexError("trailing characters in numeric literal %q: %q", word, s[i:])
	}
	if s == "" {
		return WidthInt{0, 64}, nil
	}
	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return WidthInt{}, lexError("numeric literal %q out of range", word)
	}
	return WidthInt{n, 64}, nil
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

type charClass int

const (
	classInvalid charClass = iota
	classSpace
	classAlpha
	classDigit
	classPunct
)

func classify(c byte) charClass {
	switch {
	case c >= 127:
		return classInvalid
	case c <= ' ':
		return classSpace
	case '0' <= c && c <= '9':
		return classDigit
	case c == '_', 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z':
		return classAlpha
	}
	return classPunct
}

func isWordByte(c byte) bool {
	switch classify(c) {
	case classAlpha, classDigit:
		return true
	}
	return false
}
