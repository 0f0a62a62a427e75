package main

import "fmt"

// WidthInt is an unsigned value tagged with the number of low bits it
// carries. Widths of 64 or more are never truncated.
type WidthInt struct {
	Value uint64
	Width uint64
}

// Int returns the canonical form of value at width: for widths under 64 only
// the low width bits survive.
func Int(width, value uint64) WidthInt {
	return WidthInt{value, width}.Canon()
}

// Bool returns a width-1 truth value.
func Bool(b bool) WidthInt {
	if b {
		return WidthInt{1, 1}
	}
	return WidthInt{0, 1}
}

// Canon masks v to its width.
func (v WidthInt) Canon() WidthInt {
	if v.Width < 64 {
		v.Value &= 1<<v.Width - 1
	}
	return v
}

// Truthy reports whether v is non-zero.
func (v WidthInt) Truthy() bool { return v.Value != 0 }

// Signed interprets v as a two's complement number of its width.
func (v WidthInt) Signed() int64 {
	switch {
	case v.Width >= 64:
		return int64(v.Value)
	case v.Width == 0:
		return 0
	}
	sign := uint64(1) << (v.Width - 1)
	if v.Value&sign != 0 {
		return int64(v.Value | ^(sign<<1 - 1))
	}
	return int64(v.Value & (sign<<1 - 1))
}

func (v WidthInt) String() string { return fmt.Sprintf("%d:%d", v.Value, v.Width) }
