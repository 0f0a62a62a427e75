package bitio

import (
	"encoding/binary"
	"math/bits"
)

// Copy copies min(dst.Length, src.Length) bits from src into dst, returning
// the number of bits copied. Source and destination offsets are independent.
//
// Runs of at least 64 bits move through big-endian word windows, the tail
// through byte windows. Every window is a rotate then a masked merge into the
// destination, so no per-bit loop is needed for any alignment.
func Copy(dst MutSlice, src Slice) uint {
	length := dst.Length
	if length > src.Length {
		length = src.Length
	}
	if length == 0 {
		return 0
	}
	dst.Length, src.Length = length, length

	// A destination that starts inside the not yet read part of its source
	// would clobber it, so stage those through a scratch buffer.
	if overlapsAhead(dst, src) {
		staged := BytesMutSlice(make([]byte, (length+7)>>3)).Limit(length)
		copyForward(staged, src)
		src = staged.Const()
	}

	copyForward(dst, src)
	return length
}

func copyForward(dst MutSlice, src Slice) {
	remaining := dst.Length
	if remaining > src.Length {
		remaining = src.Length
	}
	for remaining >= 64 {
		advance := windowAdvance(src.Offset, dst.Offset, 63)
		copyInsideWord(dst, src, advance)
		src.Offset += advance
		dst.Offset += advance
		remaining -= advance
	}
	for remaining > 0 {
		advance := windowAdvance(src.Offset, dst.Offset, 7)
		if advance > remaining {
			advance = remaining
		}
		copyInsideByte(dst, src, advance)
		src.Offset += advance
		dst.Offset += advance
		remaining -= advance
	}
}

// windowAdvance returns how far both sides may advance before either crosses
// its next window boundary.
func windowAdvance(srcOffset, dstOffset, windowMask uint) uint {
	srcMax := windowMask + 1 - srcOffset&windowMask
	dstMax := windowMask + 1 - dstOffset&windowMask
	if srcMax < dstMax {
		return srcMax
	}
	return dstMax
}

func copyInsideWord(dst MutSlice, src Slice, advance uint) {
	si := src.Offset >> 6 << 3
	di := dst.Offset >> 6 << 3
	sp := int(src.Offset & 63)
	dp := dst.Offset & 63

	w := binary.BigEndian.Uint64(src.Buf[si : si+8])
	w = bits.RotateLeft64(w, sp-int(dp))
	mask := ^uint64(0) >> (64 - advance) << (64 - dp - advance)

	d := binary.BigEndian.Uint64(dst.Buf[di : di+8])
	binary.BigEndian.PutUint64(dst.Buf[di:di+8], mask&w|^mask&d)
}

func copyInsideByte(dst MutSlice, src Slice, advance uint) {
	sp := int(src.Offset & 7)
	dp := dst.Offset & 7

	c := bits.RotateLeft8(src.Buf[src.Offset>>3], sp-int(dp))
	mask := byte(0xff>>(8-advance)) << (8 - dp - advance)

	p := &dst.Buf[dst.Offset>>3]
	*p = mask&c | ^mask&*p
}

func overlapsAhead(dst MutSlice, src Slice) bool {
	de, se := backingEnd(dst.Buf), backingEnd(src.Buf)
	if de == nil || de != se {
		return false
	}
	// both views share one backing array; place them relative to its start
	top := cap(dst.Buf)
	if c := cap(src.Buf); c > top {
		top = c
	}
	dstAt := dst.Offset + uint(top-cap(dst.Buf))<<3
	srcAt := src.Offset + uint(top-cap(src.Buf))<<3
	return dstAt > srcAt && dstAt < srcAt+src.Length
}

func backingEnd(buf []byte) *byte {
	if n := cap(buf); n > 0 {
		return &buf[:n][n-1]
	}
	return nil
}
