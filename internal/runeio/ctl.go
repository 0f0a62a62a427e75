package runeio

import (
	"fmt"
	"strings"
)

// ControlByte names a control byte.
type ControlByte struct {
	N string
	B byte
}

// C0Ctls contains the classic ASCII control characters.
var C0Ctls = [32]ControlByte{
	{"<NUL>", 0x00}, {"<SOH>", 0x01}, {"<STX>", 0x02}, {"<ETX>", 0x03},
	{"<EOT>", 0x04}, {"<ENQ>", 0x05}, {"<ACK>", 0x06}, {"<BEL>", 0x07},
	{"<BS>", 0x08}, {"<HT>", 0x09}, {"<NL>", 0x0A}, {"<VT>", 0x0B},
	{"<NP>", 0x0C}, {"<CR>", 0x0D}, {"<SO>", 0x0E}, {"<SI>", 0x0F},
	{"<DLE>", 0x10}, {"<DC1>", 0x11}, {"<DC2>", 0x12}, {"<DC3>", 0x13},
	{"<DC4>", 0x14}, {"<NAK>", 0x15}, {"<SYN>", 0x16}, {"<ETB>", 0x17},
	{"<CAN>", 0x18}, {"<EM>", 0x19}, {"<SUB>", 0x1A}, {"<ESC>", 0x1B},
	{"<FS>", 0x1C}, {"<GS>", 0x1D}, {"<RS>", 0x1E}, {"<US>", 0x1F},
}

// PseudoCtls provides the typical mnemonics for space and delete.
var PseudoCtls = [2]ControlByte{
	{"<SP>", 0x20},
	{"<DEL>", 0x7F},
}

// CaretForm computes the ^-escaped printable form of a C0 control byte, or ""
// for any other byte.
func CaretForm(b byte) string {
	if b < 0x20 || b == 0x7f {
		return "^" + string(rune(b^0x40))
	}
	return ""
}

// Describe renders a source byte for diagnostics: control bytes by mnemonic
// and caret form, non-ASCII bytes as hex escapes, everything else quoted.
func Describe(b byte) string {
	switch {
	case b < 0x20:
		return describeCtl(C0Ctls[b])
	case b == 0x20:
		return PseudoCtls[0].N
	case b == 0x7f:
		return describeCtl(PseudoCtls[1])
	case b >= 0x80:
		return fmt.Sprintf(`'\x%02x'`, b)
	}
	return fmt.Sprintf("'%c'", b)
}

func describeCtl(ctl ControlByte) string {
	var sb strings.Builder
	sb.WriteString(ctl.N)
	if caret := CaretForm(ctl.B); caret != "" {
		sb.WriteString(" (")
		sb.WriteString(caret)
		sb.WriteByte(')')
	}
	return sb.String()
}
