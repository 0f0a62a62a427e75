package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func Test_Interp(t *testing.T) {
	var testCases interpTestCases

	// the arithmetic and width rules of builtins
	testCases = append(testCases,
		interpTest("add widths").withProgram(`a = add(width(8,5), width(8,10))`).expectResult(15, 8),
		interpTest("add mixed widths").withProgram(`add(width(4,15), width(8,1))`).expectResult(16, 8),
		interpTest("add wraps").withProgram(`add(width(4,15), width(4,1))`).expectResult(0, 4),
		interpTest("sub wraps").withProgram(`sub(width(4,2), width(4,5))`).expectResult(13, 4),
		interpTest("mul").withProgram(`mul(width(8,20), width(8,13))`).expectResult(4, 8),
		interpTest("literal width").withProgram(`0x10`).expectResult(16, 64),
		interpTest("width truncates").withProgram(`width(4, 0xff)`).expectResult(15, 4),
		interpTest("width zero").withProgram(`width(0, 7)`).expectResult(0, 0),
		interpTest("wide width passes through").withProgram(`width(100, 0xffff)`).expectResult(0xffff, 100),
		interpTest("sig_width extends").withProgram(`sig_width(8, width(4, 0b1010))`).expectResult(0xfa, 8),
		interpTest("sig_width positive").withProgram(`sig_width(8, width(4, 0b0101))`).expectResult(5, 8),
		interpTest("sig_width of width zero").withProgram(`sig_width(8, width(0, 1))`).expectResult(0, 8),
		interpTest("bit_not").withProgram(`bit_not(width(4, 0b0110))`).expectResult(0b1001, 4),
		interpTest("bit_and narrows").withProgram(`bit_and(width(4, 0xf), width(8, 0xff))`).expectResult(0xf, 4),
		interpTest("bit_or widens").withProgram(`bit_or(width(4, 0x1), width(8, 0x80))`).expectResult(0x81, 8),
		interpTest("bit_xor").withProgram(`bit_xor(width(8, 0xf0), width(8, 0xff))`).expectResult(0x0f, 8),
		interpTest("shl keeps lhs width").withProgram(`shl(width(4, 0b0011), 3)`).expectResult(0b1000, 4),
		interpTest("shl by 64").withProgram(`shl(width(8, 1), 64)`).expectResult(0, 8),
		interpTest("shr").withProgram(`shr(width(8, 0x80), 7)`).expectResult(1, 8),
		interpTest("div").withProgram(`div(width(8, 100), 7)`).expectResult(14, 8),
		interpTest("sig_div").withProgram(`sig_div(width(8, 0xf6), width(8, 2))`).expectResult(0xfb, 8),
		interpTest("div by zero").withProgram(`div(1, 0)`).expectError(ErrDivideByZero),
		interpTest("sig_div by zero").withProgram(`sig_div(width(4, 1), width(4, 0))`).expectError(ErrDivideByZero),
	)

	// comparisons and logic
	testCases = append(testCases,
		interpTest("lt").withProgram(`lt(1, 2)`).expectResult(1, 1),
		interpTest("gt").withProgram(`gt(1, 2)`).expectResult(0, 1),
		interpTest("le equal").withProgram(`le(2, 2)`).expectResult(1, 1),
		interpTest("ge").withProgram(`ge(1, 2)`).expectResult(0, 1),
		interpTest("eq").withProgram(`eq(width(8, 3), width(4, 3))`).expectResult(1, 1),
		interpTest("unsigned lt of negative").withProgram(`lt(width(4, 0xf), width(4, 1))`).expectResult(0, 1),
		interpTest("sig_lt of negative").withProgram(`sig_lt(width(4, 0xf), width(4, 1))`).expectResult(1, 1),
		interpTest("sig_gt").withProgram(`sig_gt(width(4, 0x8), width(4, 0x7))`).expectResult(0, 1),
		interpTest("sig_le").withProgram(`sig_le(width(4, 0x8), width(4, 0x8))`).expectResult(1, 1),
		interpTest("sig_ge").withProgram(`sig_ge(width(4, 1), width(4, 0xf))`).expectResult(1, 1),
		interpTest("not").withProgram(`not(width(8, 0))`).expectResult(1, 1),
		interpTest("and").withProgram(`and(2, 4)`).expectResult(1, 1),
		interpTest("or").withProgram(`or(0, 0)`).expectResult(0, 1),
		interpTest("xor").withProgram(`xor(5, 0)`).expectResult(1, 1),
	)

	// statements, control flow, and scopes
	testCases = append(testCases,
		interpTest("empty program").withProgram(``).expectResult(0, 0),
		interpTest("statement list value").withProgram(`a = 1; b = 2; add(a, b)`).expectResult(3, 64),
		interpTest("trailing semicolon").withProgram(`a = width(8, 1);`).expectResult(1, 8),
		interpTest("empty group").withProgram(`()`).expectResult(0, 0),
		interpTest("group sequence").withProgram(`(a = 1; add(a, 1))`).expectResult(2, 64),
		interpTest("while counts").withProgram(
			`i = width(8, 0); while (lt(i, 5)) (i := add(i, width(8, 1))); i`,
		).expectResult(5, 8),
		interpTest("while never runs").withProgram(`while (0) (1)`).expectResult(0, 0),
		interpTest("while value is last body").withProgram(
			`i = width(8, 0); while (lt(i, 3)) (i := add(i, width(8, 1)))`,
		).expectResult(3, 8),
		interpTest("if taken").withProgram(`if (1) (width(8, 7))`).expectResult(7, 8),
		interpTest("if not taken").withProgram(`if (0) (width(8, 7))`).expectResult(0, 0),
		interpTest("block locals vanish").withProgram(
			`if (1) (inner = 1); inner`,
		).expectError(ErrUnboundVariable),
		interpTest("block sees outer").withProgram(
			`x = width(8, 4); if (1) (add(x, width(8, 1)))`,
		).expectResult(5, 8),
		interpTest("reassign updates outer").withProgram(
			`x = width(8, 1); if (1) (x := width(8, 9)); x`,
		).expectResult(9, 8),
		interpTest("assign shadows in block").withProgram(
			`x = width(8, 1); if (1) (x = width(8, 9)); x`,
		).expectResult(1, 8),
		interpTest("reassign creates global").withProgram(
			`function f() (made := width(8, 42)); call f(); made`,
		).expectResult(42, 8),
		interpTest("unbound variable").withProgram(`nope`).expectError(ErrUnboundVariable),
	)

	// user functions
	testCases = append(testCases,
		interpTest("square").withProgram(
			`function f(x) (mul(x, x)); call f(width(8,6))`,
		).expectResult(36, 8),
		interpTest("definition value").withProgram(`function f() (1)`).expectResult(0, 0),
		interpTest("two params").withProgram(
			`function sum(a, b) (add(a, b)); call sum(width(8, 2), width(8, 3))`,
		).expectResult(5, 8),
		interpTest("redefinition wins").withProgram(
			`function f() (1); function f() (2); call f()`,
		).expectResult(2, 64),
		interpTest("function cannot see caller locals").withProgram(
			`function peek() (local); if (1) (local = 1; call peek())`,
		).expectError(ErrUnboundVariable),
		interpTest("function sees globals").withProgram(
			`g = width(8, 3); function peek() (g); call peek()`,
		).expectResult(3, 8),
		interpTest("params are local").withProgram(
			`function f(p) (p); call f(1); p`,
		).expectError(ErrUnboundVariable),
		interpTest("recursion").withProgram(
			`function fact(n) (`,
			`  r = width(16, 1);`,
			`  if (gt(n, 1)) (r := mul(n, call fact(sub(n, width(16, 1)))));`,
			`  r`,
			`);`,
			`call fact(width(16, 6))`,
		).expectResult(720, 16),
		interpTest("undefined function").withProgram(`call nope()`).expectError(ErrUndefinedFunction),
		interpTest("call arity").withProgram(
			`function f(a) (a); call f(1, 2)`,
		).expectError(ErrArity),
	)

	// bit input and output
	testCases = append(testCases,
		interpTest("copy until eof").
			withProgram(`while (not(readeof())) (write(read(8)))`).
			withInput(0x41, 0x42).
			expectOutput(0x41, 0x42),
		interpTest("copy empty input").
			withProgram(`while (not(readeof())) (write(read(8)))`).
			expectOutput(),
		interpTest("read right justifies").
			withProgram(`read(4)`).
			withInput(0xa5).
			expectResult(0xa, 4),
		interpTest("read past end is zero").
			withProgram(`read(8); read(8)`).
			withInput(0xff).
			expectResult(0, 8),
		interpTest("readeof after zero fill").
			withProgram(`read(16); readeof()`).
			withInput(0xff).
			expectResult(1, 1),
		interpTest("read 64").
			withProgram(`read(64)`).
			withInput(1, 2, 3, 4, 5, 6, 7, 8).
			expectResult(0x0102030405060708, 64),
		interpTest("read too wide").withProgram(`read(65)`).expectError(ErrReadTooWide),
		interpTest("write pads final byte").
			withProgram(`write(width(3, 0b101))`).
			expectOutput(0xa0),
		interpTest("write nibbles").
			withProgram(`write(width(4, 0xc)); write(width(4, 0x3)); write(width(12, 0xabc))`).
			expectOutput(0xc3, 0xab, 0xc0),
		interpTest("write value").withProgram(`write(width(8, 1))`).expectResult(0, 0).expectOutput(0x01),
		interpTest("swap nibbles").
			withProgram(
				`while (not(readeof())) (`,
				`  hi = read(4); lo = read(4);`,
				`  write(lo); write(hi)`,
				`)`,
			).
			withInput(0x12, 0x34).
			expectOutput(0x21, 0x43),
		interpTest("output flushed before error").
			withProgram(`write(width(8, 0x7f)); nope`).
			expectOutput(0x7f).
			expectError(ErrUnboundVariable),
	)

	// limits
	testCases = append(testCases,
		interpTest("step limit").withProgram(`while (1) ()`).withStepLimit(1000).expectError(ErrStepLimit),
		interpTest("timeout").withProgram(`while (1) ()`).withTimeout(10*time.Millisecond).expectError(context.DeadlineExceeded),
		interpTest("small buffers").
			withProgram(`while (not(readeof())) (write(read(3)))`).
			withBufferSizes(1, 1).
			withInput(0xde, 0xad, 0xbe).
			expectOutput(0xde, 0xad, 0xbe),
	)

	testCases.run(t)
}

type interpTestCases []interpTestCase

func (its interpTestCases) run(t *testing.T) {
	{
		var exclusive []interpTestCase
		for _, it := range its {
			if it.exclusive {
				exclusive = append(exclusive, it)
			}
		}
		if len(exclusive) > 0 {
			its = exclusive
		}
	}
	for _, it := range its {
		t.Run(it.name, it.run)
	}
}

func interpTest(name string) (it interpTestCase) {
	it.name = name
	return it
}

type interpTestCase struct {
	name    string
	program string
	opts    []InterpOption
	expect  []func(t *testing.T, in *Interp, result WidthInt)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (it interpTestCase) exclusiveTest() interpTestCase {
	it.exclusive = true
	return it
}

func (it interpTestCase) withProgram(lines ...string) interpTestCase {
	it.program = strings.Join(lines, "\n")
	return it
}

func (it interpTestCase) withInput(data ...byte) interpTestCase {
	it.opts = append(it.opts, WithInput(bytes.NewReader(data)))
	return it
}

func (it interpTestCase) withBufferSizes(in, out int) interpTestCase {
	it.opts = append(it.opts, WithBufferSizes(in, out))
	return it
}

func (it interpTestCase) withStepLimit(limit uint64) interpTestCase {
	it.opts = append(it.opts, WithStepLimit(limit))
	return it
}

func (it interpTestCase) withTimeout(timeout time.Duration) interpTestCase {
	it.timeout = timeout
	return it
}

func (it interpTestCase) expectError(err error) interpTestCase {
	it.wantErr = err
	return it
}

func (it interpTestCase) expectResult(value, width uint64) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, _ *Interp, result WidthInt) {
		assert.Equal(t, WidthInt{value, width}, result, "expected result")
	})
	return it
}

func (it interpTestCase) expectOutput(data ...byte) interpTestCase {
	var out bytes.Buffer
	it.opts = append(it.opts, WithOutput(&out))
	it.expect = append(it.expect, func(t *testing.T, _ *Interp, _ WidthInt) {
		assert.Equal(t, data, nilIfEmpty(out.Bytes()), "expected output")
	})
	return it
}

func (it interpTestCase) run(t *testing.T) {
	prog, err := Parse(it.program)
	require.NoError(t, err, "unexpected parse error")

	const defaultTimeout = time.Second
	timeout := it.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
	in := New(prog, append([]InterpOption{WithLogger(log)}, it.opts...)...)
	defer func() {
		if t.Failed() {
			it.dumpToTest(t, in)
		}
	}()

	result, err := in.Run(ctx)
	if it.wantErr != nil {
		assert.True(t, errors.Is(err, it.wantErr), "expected error: %v\ngot: %+v", it.wantErr, err)
	} else {
		require.NoError(t, err, "unexpected run error")
	}

	for _, expect := range it.expect {
		expect(t, in, result)
	}
}

func (it interpTestCase) dumpToTest(t *testing.T, in *Interp) {
	var out strings.Builder
	interpDumper{in: in, out: &out}.dump()
	t.Logf("%s", out.String())
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

func Test_Interp_deepNesting(t *testing.T) {
	run := func(t *testing.T, src string) WidthInt {
		prog, err := Parse(src)
		require.NoError(t, err, "unexpected parse error")
		result, err := New(prog).Run(context.Background())
		require.NoError(t, err, "unexpected run error")
		return result
	}

	t.Run("nested builtins", func(t *testing.T) {
		const depth = 100001
		src := strings.Repeat("not(", depth) + "0" + strings.Repeat(")", depth)
		assert.Equal(t, WidthInt{1, 1}, run(t, src))
	})

	t.Run("nested blocks", func(t *testing.T) {
		const depth = 50000
		src := "x = width(8, 3); " +
			strings.Repeat("if (1) (", depth) + "x := add(x, width(8, 1))" + strings.Repeat(")", depth) +
			"; x"
		assert.Equal(t, WidthInt{4, 8}, run(t, src))
	})

	t.Run("recursive calls", func(t *testing.T) {
		src := strings.Join([]string{
			`function down(n) (`,
			`  v = width(8, 7);`,
			`  if (n) (v := call down(sub(n, 1)));`,
			`  v`,
			`);`,
			`call down(100000)`,
		}, "\n")
		assert.Equal(t, WidthInt{7, 8}, run(t, src))
	})
}
