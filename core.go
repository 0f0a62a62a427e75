package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jcorbin/bitstreamop/internal/bitio"
)

// Interp evaluates a parsed program against a bit input stream and a bit
// output stream.
type Interp struct {
	program Node
	log     *zap.Logger

	src     io.Reader
	sink    bitio.Sink
	inSize  int
	outSize int

	in  *bitio.Reader
	out *bitio.Writer

	scopes
	funcs registry
	stack []*evalFrame

	steps     uint64
	stepLimit uint64
}

func (in *Interp) init() {
	in.in = bitio.NewReader(in.src, in.inSize, in.log.Named("in"))
	in.out = bitio.NewWriter(in.sink, in.outSize, in.log.Named("out"))
	in.scopes = newScopes()
	in.funcs = nil
	in.stack = in.stack[:0]
	in.steps = 0
}

// flush pads any partial output byte and flushes the sink.
func (in *Interp) flush() error {
	if in.out != nil {
		if err := in.out.Flush(); err != nil {
			return err
		}
	}
	return in.sink.Flush()
}

func (in *Interp) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ferr := in.flush(); err == nil {
			err = ferr
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		in.log.Debug("halt", zap.Error(err), zap.Int("depth", len(in.stack)))
	}()

	panic(haltError{err})
}

func (in *Interp) haltif(err error) {
	if err != nil {
		in.halt(err)
	}
}

func (in *Interp) readBits(amount uint64) WidthInt {
	if amount > 64 {
		in.halt(evalError(ErrReadTooWide, "read(%d)", amount))
	}
	if amount == 0 {
		return WidthInt{}
	}
	var buf [8]byte
	dst := bitio.BytesMutSlice(buf[:]).Limit(uint(amount))
	if _, err := in.in.ReadBits(&dst, uint(amount)); err != nil {
		in.halt(err)
	}
	return WidthInt{binary.BigEndian.Uint64(buf[:]) >> (64 - amount), amount}
}

func (in *Interp) writeBits(v WidthInt) {
	n := min(v.Width, 64)
	if n == 0 {
		return
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v.Value<<(64-n))
	src := bitio.BytesSlice(buf[:]).Limit(uint(n))
	if _, err := in.out.WriteBits(&src, uint(n)); err != nil {
		in.halt(err)
	}
}

func (in *Interp) readEOF() bool {
	eof, err := in.in.EOF()
	in.haltif(err)
	return eof
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }
