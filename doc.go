/* Package main: bitstreamop, a language for rewriting bit streams

Programs read bits from standard input, compute with width tagged integers,
and write bits to standard output. Every value carries the number of bits it
is meant to hold; reading 3 bits yields a 3 bit value, and writing a value
emits exactly its width in bits, most significant bit first. The final
partial output byte is padded with zero bits.

A program is a sequence of statements separated by ';'. A statement is an
expression, possibly assigning it to a name:

	x = width(8, 5)       binds x in the innermost block
	x := add(x, 1)        updates the nearest visible x, or makes a global one
	(a; b; c)             evaluates in order, yielding the value of c
	while (cond) body     repeats body while cond is non-zero
	if (cond) body        evaluates body once when cond is non-zero
	function f(a, b) body defines (or redefines) a user function
	call f(1, 2)          invokes a user function by name

Numeric literals are 64 bits wide and may carry a base prefix after any
leading zeros: 0x1f, 0b101, 0o17, 0d19.

Builtins are fixed at parse time, and calling one with the wrong number of
arguments is a parse error:

	read(n)                          read n bits (at most 64); zero past end of input
	write(v)                         write the low bits of v
	readeof()                        1 once input is exhausted
	width(w, v), sig_width(w, v)     truncate or sign extend v to w bits
	add sub mul div sig_div          arithmetic, wrapping to the wider operand
	bit_not bit_and bit_or bit_xor   bitwise operations
	shl shr                          shifts, keeping the left operand's width
	not and or xor                   logic on truthiness, yielding 1 bit
	lt gt le ge eq                   unsigned comparisons
	sig_lt sig_gt sig_le sig_ge      two's complement comparisons

Blocks opened by while and if see their enclosing variables; their own
assignments vanish when the block ends. User functions see only their
parameters, their own blocks, and globals. Function calls are resolved when
they run, so a function may be called before its definition is reached as
long as the definition has been evaluated by then.

Parsing and evaluation never recurse: the parser keeps an explicit frame
stack so that source may arrive in arbitrary chunks, and the evaluator runs
each node as a heap allocated frame so that programs may nest arbitrarily
deep.

Usage:

	bitstreamop [options] '<program>' <in.bin >out.bin
	bitstreamop [options] -f prog.bso [-f more.bso ...] <in.bin >out.bin

Pass -d to print the parsed tree instead of running it, -lex to print its
tokens, and -trace to log evaluation to stderr.
*/
package main
