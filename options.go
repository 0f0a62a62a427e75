package main

import (
	"bytes"
	"io"

	"go.uber.org/zap"

	"github.com/jcorbin/bitstreamop/internal/bitio"
)

// InterpOption configures an Interp created by New.
type InterpOption interface{ apply(in *Interp) }

const defaultBufferSize = 16

var defaults = []InterpOption{
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
	withBufferSizes(defaultBufferSize, defaultBufferSize),
	withLogger(nil),
}

func (in *Interp) apply(opts ...InterpOption) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(in)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type loggerOption struct{ *zap.Logger }
type bufferSizesOption struct{ in, out int }
type stepLimitOption uint64

func withInput(r io.Reader) inputOption             { return inputOption{r} }
func withOutput(w io.Writer) outputOption           { return outputOption{w} }
func withTee(w io.Writer) teeOption                 { return teeOption{w} }
func withLogger(log *zap.Logger) loggerOption       { return loggerOption{log} }
func withStepLimit(limit uint64) stepLimitOption    { return stepLimitOption(limit) }
func withBufferSizes(in, out int) bufferSizesOption { return bufferSizesOption{in, out} }

func (i inputOption) apply(in *Interp) {
	in.src = i.Reader
}

func (o outputOption) apply(in *Interp) {
	if in.sink != nil {
		in.sink.Flush()
	}
	in.sink = bitio.NewSink(o.Writer)
}

func (o teeOption) apply(in *Interp) {
	in.sink = bitio.Tee(in.sink, bitio.NewSink(o.Writer))
}

func (o loggerOption) apply(in *Interp) {
	if o.Logger == nil {
		in.log = zap.NewNop()
	} else {
		in.log = o.Logger
	}
}

func (o bufferSizesOption) apply(in *Interp) {
	if o.in > 0 {
		in.inSize = o.in
	}
	if o.out > 0 {
		in.outSize = o.out
	}
}

func (lim stepLimitOption) apply(in *Interp) {
	in.stepLimit = uint64(lim)
}
