package bitio

// Slice is a read-only view of Length bits of Buf starting at bit Offset.
// Bits are numbered most-significant first within each byte.
type Slice struct {
	Buf    []byte
	Offset uint
	Length uint
}

// MutSlice is a writable view of Length bits of Buf starting at bit Offset.
type MutSlice struct {
	Buf    []byte
	Offset uint
	Length uint
}

// BytesSlice returns a view of all the bits in buf.
func BytesSlice(buf []byte) Slice { return Slice{buf, 0, uint(len(buf)) << 3} }

// BytesMutSlice returns a writable view of all the bits in buf.
func BytesMutSlice(buf []byte) MutSlice { return MutSlice{buf, 0, uint(len(buf)) << 3} }

// Const returns a read-only view of the same bits.
func (s MutSlice) Const() Slice { return Slice{s.Buf, s.Offset, s.Length} }

// Sub returns the bits in [start, end) of s, clamped to s.Length.
func (s Slice) Sub(start, end uint) Slice {
	s.Offset, s.Length = subRange(s.Offset, s.Length, start, end)
	return s
}

// Sub returns the bits in [start, end) of s, clamped to s.Length.
func (s MutSlice) Sub(start, end uint) MutSlice {
	s.Offset, s.Length = subRange(s.Offset, s.Length, start, end)
	return s
}

// Advance drops the first n bits from the view.
func (s *Slice) Advance(n uint) { *s = s.Sub(n, s.Length) }

// Advance drops the first n bits from the view.
func (s *MutSlice) Advance(n uint) { *s = s.Sub(n, s.Length) }

// Limit shortens the view to at most n bits.
func (s Slice) Limit(n uint) Slice { return s.Sub(0, n) }

// Limit shortens the view to at most n bits.
func (s MutSlice) Limit(n uint) MutSlice { return s.Sub(0, n) }

// Bit returns the i-th bit of the view.
func (s Slice) Bit(i uint) bool {
	at := s.Offset + i
	return s.Buf[at>>3]&(0x80>>(at&7)) != 0
}

func subRange(offset, length, start, end uint) (uint, uint) {
	if end > length {
		end = length
	}
	if end > start {
		length = end - start
	} else {
		length = 0
	}
	return offset + start, length
}
