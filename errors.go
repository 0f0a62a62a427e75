package main

import (
	"errors"
	"fmt"
	"strings"
)

// Phase names the pipeline stage that detected an error.
type Phase string

const (
	PhaseLex   Phase = "lex"
	PhaseParse Phase = "parse"
	PhaseEval  Phase = "eval"
)

// Error kinds, matchable through errors.Is.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrUnknownBuiltin    = errors.New("unknown builtin")
	ErrArity             = errors.New("wrong argument count")
	ErrUnboundVariable   = errors.New("unbound variable")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrReadTooWide       = errors.New("cannot read more than 64 bits")
	ErrDivideByZero      = errors.New("division by zero")
	ErrStepLimit         = errors.New("step limit exceeded")
)

// Error is a fatal language error.
type Error struct {
	Phase  Phase
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
		if e.Detail != "" {
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Detail)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

func lexError(mess string, args ...interface{}) *Error {
	return &Error{PhaseLex, ErrSyntax, fmt.Sprintf(mess, args...)}
}

func parseError(kind error, mess string, args ...interface{}) *Error {
	return &Error{PhaseParse, kind, fmt.Sprintf(mess, args...)}
}

func evalError(kind error, mess string, args ...interface{}) *Error {
	return &Error{PhaseEval, kind, fmt.Sprintf(mess, args...)}
}
