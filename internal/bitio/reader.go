package bitio

import (
	"io"

	"go.uber.org/zap"
)

// Reader unpacks bits MSB-first from a byte source.
//
// Reading past the end of the source is not an error: the missing bits read
// as zero and EOF starts reporting true.
type Reader struct {
	buf buffer
	src io.Reader
	eof bool
	log *zap.Logger
}

// NewReader creates a Reader with a size byte input buffer; log may be nil.
func NewReader(src io.Reader, size int, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{
		buf: newBuffer(size),
		src: src,
		log: log,
	}
}

// ReadBits reads up to amount bits into the front of dst, advancing dst past
// them. Errors are only returned for source failures other than io.EOF.
func (r *Reader) ReadBits(dst *MutSlice, amount uint) (uint, error) {
	if amount > dst.Length {
		amount = dst.Length
	}
	remaining := amount
	for remaining > 0 {
		if err := r.fetch(remaining); err != nil {
			return amount - remaining, err
		}
		n := Copy(dst.Limit(remaining), r.buf.valid())
		remaining -= n
		dst.Advance(n)
		r.buf.used += n
		r.buf.discard(int(r.buf.used >> 3))
	}
	return amount, nil
}

// EOF reports whether the source is exhausted: either an earlier read already
// ran past its end, or nothing is buffered and the source has no more bytes.
func (r *Reader) EOF() (bool, error) {
	if r.eof {
		return true, nil
	}
	if r.Buffered() > 0 {
		return false, nil
	}
	n, err := io.ReadAtLeast(r.src, r.buf.data[r.buf.ioLen:], 1)
	r.buf.ioLen += n
	r.logFetch(n)
	if err == io.EOF {
		r.eof = true
		return true, nil
	}
	return false, err
}

// Buffered returns the number of fetched bits not yet consumed.
func (r *Reader) Buffered() uint { return r.buf.valid().Length }

// fetch tops up the buffer towards want unconsumed bits, bounded by its
// capacity; an exhausted source supplies zero bytes instead.
func (r *Reader) fetch(want uint) error {
	have := r.Buffered()
	if want <= have {
		return nil
	}
	need := int((want - have + 7) >> 3)
	if room := len(r.buf.data) - r.buf.ioLen; need > room {
		need = room
	}
	if need == 0 {
		return nil
	}

	region := r.buf.data[r.buf.ioLen : r.buf.ioLen+need]
	n := 0
	if !r.eof {
		var err error
		n, err = io.ReadAtLeast(r.src, region, 1)
		r.logFetch(n)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return err
		}
	}
	if n == 0 {
		for i := range region {
			region[i] = 0
		}
		n = need
	}
	r.buf.ioLen += n
	return nil
}

func (r *Reader) logFetch(n int) {
	if ce := r.log.Check(zap.DebugLevel, "bitio fetch"); ce != nil {
		ce.Write(zap.Int("bytes", n), zap.Bool("eof", r.eof))
	}
}
