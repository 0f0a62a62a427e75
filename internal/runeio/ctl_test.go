package runeio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/bitstreamop/internal/runeio"
)

func TestDescribe(t *testing.T) {
	for _, tc := range []struct {
		in  byte
		out string
	}{
		{0x00, "<NUL> (^@)"},
		{0x1b, "<ESC> (^[)"},
		{'\t', "<HT> (^I)"},
		{' ', "<SP>"},
		{0x7f, "<DEL> (^?)"},
		{0xc3, `'\xc3'`},
		{'$', "'$'"},
	} {
		assert.Equal(t, tc.out, runeio.Describe(tc.in), "describe %#02x", tc.in)
	}
}
