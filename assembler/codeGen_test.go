package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeModRM(t *testing.T) {
	tests := []struct {
		name      string
		regField  int
		base      Register
		isAddress bool
		expected  []byte
	}{
		{name: "bx", regField: 0, base: BX, isAddress: true, expected: []byte{0x87}},
		{name: "si", regField: 0, base: SI, isAddress: true, expected: []byte{0x84}},
		{name: "di reg field", regField: CX.Num(), base: DI, isAddress: true, expected: []byte{0x8D}},
		{name: "bp", regField: 0, base: BP, isAddress: true, expected: []byte{0x86}},
		{name: "esp adds sib", regField: 0, base: ESP, isAddress: true, expected: []byte{0x84, 0x24}},
		{name: "ebx", regField: 2, base: EBX, isAddress: true, expected: []byte{0x93}},
		{name: "register direct", regField: EAX.Num(), base: ECX, isAddress: false, expected: []byte{0xC1}},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, makeModRM(tc.regField, tc.base, tc.isAddress).Bytes())
		})
	}
}

func TestOpCode_String(t *testing.T) {
	t.Run("prefixes", func(t *testing.T) {
		code := OpCode{
			makeOperandSizePrefix(),
			makeSegmentPrefix(ES),
			makeAddressSizePrefix(),
			makeByte(0x81),
			makeByte(0x84),
			makeValue(0x10, 4),
			makeValue(0x1000, 4),
		}
		require.Equal(t, "66| 26: 67| 81 84 00000010 00001000", code.String())
		require.Equal(t, 13, code.Size())
	})
	t.Run("negative values are masked", func(t *testing.T) {
		code := OpCode{makeByte(0x72), makeValue(-5, 1)}
		require.Equal(t, "72 FB", code.String())
	})
	t.Run("zero width value", func(t *testing.T) {
		code := OpCode{makeByte(0x81), makeValue(5, 0)}
		require.Equal(t, "81", code.String())
		require.Equal(t, 1, code.Size())
	})
	t.Run("empty", func(t *testing.T) {
		require.Equal(t, "", OpCode{}.String())
	})
}

func TestOpCode_Bytes(t *testing.T) {
	code := OpCode{makeOperandSizePrefix(), makeByte(0xB8), makeValue(1, 4)}
	require.Equal(t, "66| B8 00000001", code.String())
	require.Equal(t, []byte{0x66, 0xB8, 0x01, 0x00, 0x00, 0x00}, code.Bytes())

	code = OpCode{makeByte(0xE9), makeValue(0x1234, 2)}
	require.Equal(t, []byte{0xE9, 0x34, 0x12}, code.Bytes())
}

func TestNops(t *testing.T) {
	require.Equal(t, "90 90 90", nops(3).String())
	require.Equal(t, 0, nops(0).Size())
}
