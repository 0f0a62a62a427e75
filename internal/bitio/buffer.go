package bitio

// buffer is a fixed capacity byte window shared by Reader and Writer.
//
// For input, ioLen counts bytes fetched from the source and used counts bits
// already consumed; for output, ioLen counts bytes already handed to the sink
// and used counts bits produced. Input keeps used <= ioLen*8, output keeps
// ioLen*8 <= used, and both stay within len(data)*8.
type buffer struct {
	data  []byte
	ioLen int
	used  uint
}

func newBuffer(size int) buffer {
	if size < 1 {
		size = 1
	}
	return buffer{data: make([]byte, size)}
}

func (b *buffer) capBits() uint { return uint(len(b.data)) << 3 }

// free is the writable region after the used bits.
func (b *buffer) free() MutSlice {
	return MutSlice{b.data, b.used, b.capBits() - b.used}
}

// valid is the fetched but not yet consumed region.
func (b *buffer) valid() Slice {
	end := uint(b.ioLen) << 3
	if end < b.used {
		return Slice{b.data, b.used, 0}
	}
	return Slice{b.data, b.used, end - b.used}
}

// discard drops n leading bytes, shifting the rest to the front.
func (b *buffer) discard(n int) {
	if n <= 0 {
		return
	}
	copy(b.data, b.data[n:])
	b.ioLen -= n
	b.used -= uint(n) << 3
}
