package bitio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Sink is the byte stream under a Writer. Flush pushes out anything the sink
// itself holds back; Writer.Flush never calls it.
type Sink interface {
	io.Writer
	Flush() error
}

// NewSink adapts w for use under a Writer. Sinks pass through unchanged.
// Memory backed writers and io.Discard are used directly; anything else gets
// a bufio.Writer so that the Writer's small drains do not each become a
// system call.
func NewSink(w io.Writer) Sink {
	switch w := w.(type) {
	case Sink:
		return w
	case *bytes.Buffer, *strings.Builder:
		return unbuffered{w}
	}
	if w == io.Discard {
		return unbuffered{w}
	}
	return bufio.NewWriter(w)
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

// Tee fans every write out to all of the given sinks, in order. Nil sinks are
// skipped and nested tees are flattened; a single sink is returned as is.
func Tee(sinks ...Sink) Sink {
	var fan tee
	for _, sink := range sinks {
		switch sink := sink.(type) {
		case nil:
		case tee:
			fan = append(fan, sink...)
		default:
			fan = append(fan, sink)
		}
	}
	if len(fan) == 1 {
		return fan[0]
	}
	return fan
}

type tee []Sink

func (fan tee) Write(p []byte) (int, error) {
	for _, sink := range fan {
		if n, err := writeFull(sink, p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}

// Flush flushes every sink, even after one fails, returning the first error.
func (fan tee) Flush() (err error) {
	for _, sink := range fan {
		if ferr := sink.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// writeFull retries short writes for as long as w keeps accepting bytes.
func writeFull(w io.Writer, p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := w.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
