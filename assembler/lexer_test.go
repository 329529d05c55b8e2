package assembler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	t.Run("instruction with operands", func(t *testing.T) {
		lexemes := Lex("mov eax, 1h")
		require.Equal(t, []Lexeme{
			{Value: "mov", Type: LexemeInstruction, Start: 0},
			{Value: "eax", Type: LexemeRegisterGeneral, Start: 4},
			{Value: ",", Type: LexemeOneSymbol, Start: 7},
			{Value: "1h", Type: LexemeConstHex, Start: 9},
		}, lexemes)
	})
	t.Run("symbols split without spaces", func(t *testing.T) {
		lexemes := Lex("\tinc es:var1[bx] ; comment")
		values := []string{}
		for _, l := range lexemes {
			values = append(values, l.Value)
		}
		require.Equal(t, []string{"inc", "es", ":", "var1", "[", "bx", "]"}, values)
		require.Equal(t, LexemeRegisterSegment, lexemes[1].Type)
		require.Equal(t, LexemeUserIdentifier, lexemes[3].Type)
		require.Equal(t, 1, lexemes[0].Start)
	})
	t.Run("comment only", func(t *testing.T) {
		require.Empty(t, Lex("   ; nothing here"))
	})
	t.Run("empty", func(t *testing.T) {
		require.Empty(t, Lex(""))
	})
}

func TestLex_Types(t *testing.T) {
	tests := []struct {
		value    string
		expected LexemeType
	}{
		{value: "CLI", expected: LexemeInstruction},
		{value: "jmp", expected: LexemeInstruction},
		{value: "Segment", expected: LexemeDirective},
		{value: "assume", expected: LexemeDirective},
		{value: "esp", expected: LexemeRegisterGeneral},
		{value: "BH", expected: LexemeRegisterGeneral},
		{value: "ds", expected: LexemeRegisterSegment},
		{value: "dd", expected: LexemeDataType},
		{value: "1010b", expected: LexemeConstBin},
		{value: "123", expected: LexemeConstDec},
		{value: "123d", expected: LexemeConstDec},
		{value: "5d", expected: LexemeConstDec},
		{value: "0FFh", expected: LexemeConstHex},
		{value: "5dh", expected: LexemeConstHex},
		{value: "'hello'", expected: LexemeConstString},
		{value: "var1", expected: LexemeUserIdentifier},
		{value: "toolongname", expected: LexemeError},
		{value: "FFh", expected: LexemeUserIdentifier},
		{value: "1x", expected: LexemeError},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.value, func(t *testing.T) {
			lexemes := Lex(tc.value)
			require.Len(t, lexemes, 1)
			require.Equal(t, tc.expected, lexemes[0].Type)
		})
	}
}

func TestConstValue_RoundTrip(t *testing.T) {
	for v := int64(0); v <= 65535; v++ {
		hex, err := ConstValue(fmt.Sprintf("%04Xh", v))
		require.NoError(t, err)
		require.Equal(t, v, hex)

		dec, err := ConstValue(fmt.Sprintf("%dd", v))
		require.NoError(t, err)
		require.Equal(t, v, dec)
	}
}

func TestConstValue(t *testing.T) {
	v, err := ConstValue("1010b")
	require.NoError(t, err)
	require.Equal(t, int64(10), v)

	v, err = ConstValue("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	_, err = ConstValue("")
	require.Error(t, err)
}

func TestConstSize(t *testing.T) {
	require.Equal(t, 1, ConstSize(0))
	require.Equal(t, 1, ConstSize(255))
	require.Equal(t, 2, ConstSize(256))
	require.Equal(t, 2, ConstSize(65535))
	require.Equal(t, 4, ConstSize(65536))
	require.Equal(t, 4, ConstSize(2147483647))
	require.Equal(t, -1, ConstSize(2147483648))
}

func TestConstOperand(t *testing.T) {
	v, size := constOperand(Lexeme{Value: "100h", Type: LexemeConstHex})
	require.Equal(t, int64(256), v)
	require.Equal(t, 2, size)

	_, size = constOperand(Lexeme{Value: "'a'", Type: LexemeConstString})
	require.Equal(t, -1, size)

	_, size = constOperand(Lexeme{Value: "99999999999999999999", Type: LexemeConstDec})
	require.Equal(t, -1, size)
}
