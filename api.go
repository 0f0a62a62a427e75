package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jcorbin/bitstreamop/internal/fileinput"
	"github.com/jcorbin/bitstreamop/internal/panicerr"
)

// New creates an interpreter for a parsed program.
func New(program Node, opts ...InterpOption) *Interp {
	in := Interp{program: program}
	in.apply(opts...)
	return &in
}

// Run evaluates the program to completion, flushing all output, and returns
// the value of its last statement.
func (in *Interp) Run(ctx context.Context) (result WidthInt, err error) {
	err = panicerr.Recover("interp", func() error {
		in.init()
		result = in.eval(ctx, in.program)
		return in.flush()
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return result, err
}

func WithInput(r io.Reader) InterpOption       { return withInput(r) }
func WithOutput(w io.Writer) InterpOption      { return withOutput(w) }
func WithTee(w io.Writer) InterpOption         { return withTee(w) }
func WithLogger(log *zap.Logger) InterpOption  { return withLogger(log) }
func WithStepLimit(limit uint64) InterpOption  { return withStepLimit(limit) }
func WithBufferSizes(in, out int) InterpOption { return withBufferSizes(in, out) }

// Parse parses a complete program.
func Parse(src string) (Node, error) {
	p := NewParser(nil)
	if err := p.Feed([]byte(src)); err != nil {
		return nil, err
	}
	return p.End()
}

// ParseInput parses a program read line by line from every source queued in
// input. Errors carry the location of the line being parsed.
func ParseInput(input *fileinput.Input, log *zap.Logger) (Node, error) {
	p := NewParser(log)
	err := eachLine(input, p.Feed)
	if err != nil {
		return nil, err
	}
	prog, err := p.End()
	if err != nil {
		return nil, locatedError{input.Last, err}
	}
	return prog, nil
}

// ParseReader parses a program from r.
func ParseReader(r io.Reader, log *zap.Logger) (Node, error) {
	return ParseInput(&fileinput.Input{Queue: []io.Reader{r}}, log)
}

// Tokenize lexes every source queued in input, passing each token to fn.
func Tokenize(input *fileinput.Input, fn func(Token)) error {
	var lx Lexer
	drain := func() error {
		for lx.HasToken() {
			fn(lx.Take())
		}
		return lx.Err()
	}
	if err := eachLine(input, func(line []byte) error {
		if err := lx.Feed(line); err != nil {
			return err
		}
		return drain()
	}); err != nil {
		return err
	}
	if err := lx.End(); err != nil {
		return locatedError{input.Last, err}
	}
	if err := drain(); err != nil {
		return locatedError{input.Last, err}
	}
	return nil
}

func eachLine(input *fileinput.Input, fn func([]byte) error) error {
	for {
		line, err := input.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := fn(line); err != nil {
			return locatedError{input.Last, err}
		}
	}
}

type locatedError struct {
	loc fileinput.Location
	err error
}

func (le locatedError) Error() string {
	if le.loc.Name == "" {
		return le.err.Error()
	}
	return fmt.Sprintf("%v: %v", le.loc, le.err)
}

func (le locatedError) Unwrap() error { return le.err }

