package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexChunks(chunks ...string) ([]Token, error) {
	var (
		lx   Lexer
		toks []Token
	)
	drain := func() {
		for lx.HasToken() {
			toks = append(toks, lx.Take())
		}
	}
	for _, chunk := range chunks {
		if err := lx.Feed([]byte(chunk)); err != nil {
			return toks, err
		}
		drain()
		if err := lx.Err(); err != nil {
			return toks, err
		}
	}
	if err := lx.End(); err != nil {
		return toks, err
	}
	drain()
	return toks, lx.Err()
}

func num(n uint64) Token           { return Token{Kind: TokenNumber, Value: WidthInt{n, 64}} }
func ident(name string) Token      { return Token{Kind: TokenIdent, Name: name} }
func keyword(kw Keyword) Token     { return Token{Kind: TokenKeyword, Keyword: kw} }
func punct(kind TokenKind) Token   { return Token{Kind: kind} }
func reassignTok() Token           { return Token{Kind: TokenAssign, Reassign: true} }
func tokens(toks ...Token) []Token { return toks }

func Test_Lexer(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		expect []Token
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\r\n\x00", nil},
		{"punctuation", "(),;=", tokens(
			punct(TokenLParen), punct(TokenRParen), punct(TokenComma),
			punct(TokenSemicolon), punct(TokenAssign))},
		{"reassign", "x := 1", tokens(ident("x"), reassignTok(), num(1))},
		{"keywords", "while if function call whilst", tokens(
			keyword(KeywordWhile), keyword(KeywordIf), keyword(KeywordFunction),
			keyword(KeywordCall), ident("whilst"))},
		{"identifiers", "_a b_2 Caps", tokens(ident("_a"), ident("b_2"), ident("Caps"))},
		{"call", "add(x,2)", tokens(
			ident("add"), punct(TokenLParen), ident("x"), punct(TokenComma),
			num(2), punct(TokenRParen))},
		{"decimal", "42", tokens(num(42))},
		{"leading zeros", "0007", tokens(num(7))},
		{"zero", "0", tokens(num(0))},
		{"bare prefix", "0x", tokens(num(0))},
		{"hex", "0xfF", tokens(num(255))},
		{"binary", "0b1011", tokens(num(11))},
		{"octal", "0O17", tokens(num(15))},
		{"explicit decimal", "0d19", tokens(num(19))},
		{"max", "0xffffffffffffffff", tokens(num(^uint64(0)))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := lexChunks(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, toks)
		})
	}
}

func Test_Lexer_errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		expect string
	}{
		{"colon alone", "a : b", `[lex] syntax error: expected '=' after ':', got <SP>`},
		{"colon at end", "a :", `[lex] syntax error: expected '=' after ':', got end of input`},
		{"unknown punctuation", "a + b", `[lex] syntax error: unexpected punctuation '+'`},
		{"delete byte", "a\x7f", `[lex] syntax error: unexpected byte <DEL> (^?)`},
		{"high byte", "\xc3", `[lex] syntax error: unexpected byte '\xc3'`},
		{"trailing decimal", "12ab", `[lex] syntax error: trailing characters in numeric literal "12ab": "ab"`},
		{"bad binary digit", "0b102", `[lex] syntax error: trailing characters in numeric literal "0b102": "2"`},
		{"overflow", "0x10000000000000000", `[lex] syntax error: numeric literal "0x10000000000000000" out of range`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lexChunks(tc.src)
			require.Error(t, err)
			assert.EqualError(t, err, tc.expect)
			assert.True(t, errors.Is(err, ErrSyntax))
		})
	}
}

func Test_Lexer_suspendsOnWords(t *testing.T) {
	var lx Lexer
	require.NoError(t, lx.Feed([]byte("whi")))
	assert.False(t, lx.HasToken())
	require.NoError(t, lx.Feed([]byte("le")))
	assert.False(t, lx.HasToken(), "word still touches end of input")
	require.NoError(t, lx.Feed([]byte("(")))
	require.True(t, lx.HasToken())
	assert.Equal(t, keyword(KeywordWhile), lx.Take())
	require.True(t, lx.HasToken())
	assert.Equal(t, punct(TokenLParen), lx.Take())

	require.NoError(t, lx.Feed([]byte("12")))
	assert.False(t, lx.HasToken())
	require.NoError(t, lx.End())
	require.True(t, lx.HasToken())
	assert.Equal(t, num(12), lx.Take())
	assert.False(t, lx.pending())
}

func Test_Lexer_chunkingEquivalence(t *testing.T) {
	for _, src := range []string{
		"a = add(width(8,5), width(8,10))",
		"while (not(readeof())) (write(read(8)))",
		"function f(x) (mul(x, x)); call f(width(8,6))",
		"x := 0x7f;\n  y=0b101 ; z = 0d0009",
	} {
		whole, err := lexChunks(src)
		require.NoError(t, err)

		for i := 0; i <= len(src); i++ {
			split, err := lexChunks(src[:i], src[i:])
			require.NoError(t, err, "split at %d", i)
			assert.Equal(t, whole, split, "split at %d of %q", i, src)
		}

		bytewise := make([]string, len(src))
		for i := range src {
			bytewise[i] = src[i : i+1]
		}
		split, err := lexChunks(bytewise...)
		require.NoError(t, err)
		assert.Equal(t, whole, split, "byte at a time %q", src)
	}
}
