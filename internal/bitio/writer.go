package bitio

import (
	"io"

	"go.uber.org/zap"
)

// Writer packs bits MSB-first into bytes and hands every completed byte to an
// underlying sink.
type Writer struct {
	buf  buffer
	sink io.Writer
	log  *zap.Logger
}

// NewWriter creates a Writer with a size byte output buffer; log may be nil.
func NewWriter(sink io.Writer, size int, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{
		buf:  newBuffer(size),
		sink: sink,
		log:  log,
	}
}

// WriteBits writes up to amount bits from the front of src, advancing src past
// them. It returns the number of bits written, which is less than the
// requested amount only alongside a sink error.
func (w *Writer) WriteBits(src *Slice, amount uint) (uint, error) {
	if amount > src.Length {
		amount = src.Length
	}
	remaining := amount
	for remaining > 0 {
		free := w.buf.free()
		n := Copy(free.Limit(remaining), *src)
		remaining -= n
		src.Advance(n)
		w.buf.used += n
		if free.Length-n <= 8 {
			w.buf.discard(w.buf.ioLen)
		}
		if err := w.drain(); err != nil {
			return amount - remaining, err
		}
	}
	return amount, nil
}

// Pending returns the number of produced bits not yet handed to the sink.
func (w *Writer) Pending() uint {
	return w.buf.used - uint(w.buf.ioLen)<<3
}

// Flush zero pads any final partial byte and writes every remaining byte to
// the sink. It does not flush the sink itself.
func (w *Writer) Flush() error {
	if partial := w.buf.used & 7; partial != 0 {
		var zero [1]byte
		pad := BytesSlice(zero[:]).Limit(8 - partial)
		if _, err := w.WriteBits(&pad, pad.Length); err != nil {
			return err
		}
	}
	return w.drain()
}

func (w *Writer) drain() error {
	pending := int(w.buf.used>>3) - w.buf.ioLen
	if pending <= 0 {
		return nil
	}
	n, err := writeFull(w.sink, w.buf.data[w.buf.ioLen:w.buf.ioLen+pending])
	w.buf.ioLen += n
	if ce := w.log.Check(zap.DebugLevel, "bitio flush"); ce != nil {
		ce.Write(zap.Int("bytes", n), zap.Int("pending", pending), zap.Error(err))
	}
	return err
}
