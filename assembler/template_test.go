package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineTemplate(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{line: "data segment", expected: "ID SEGMENT"},
		{line: "assume cs:code, ds:data, es:extra", expected: "ASSUME rS : ID"},
		{line: "inc var1[bx]", expected: "INC ID [ ADDR ]"},
		{line: "inc var1[esp]", expected: "INC ID [ ADDR ]"},
		{line: "inc var1[ax]", expected: "INC ID [ reg ]"},
		{line: "add fs:var1[edi], 10b", expected: "ADD rS : ID [ ADDR ] , CONST"},
		{line: "mov al, 'a'", expected: "MOV reg , CONST"},
		{line: "msg db 'hi'", expected: "ID DB C_STR"},
		{line: "w dw 'hi'", expected: "ID DW CONST"},
		{line: "or eax, cx", expected: "OR reg , reg"},
		{line: "start: cli", expected: "ID : CLI"},
		{line: "", expected: ""},
		{line: "mov ax, 1x", expected: "MOV reg , <Error lexeme 1x>"},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.line, func(t *testing.T) {
			require.Equal(t, tc.expected, LineTemplate(Lex(tc.line)))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		expected LineType
	}{
		{line: "code segment", expected: LineBeginSegment},
		{line: "code ends", expected: LineEndSegment},
		{line: "assume cs:code", expected: LineAssume},
		{line: "end start", expected: LineEnd},
		{line: "end", expected: LineEnd},
		{line: "start:", expected: LineLabel},
		{line: "x dd 12345678h", expected: LineDataDeclaration},
		{line: "s db 'text'", expected: LineDataDeclaration},
		{line: "cli", expected: LineInstructions},
		{line: "lbl: dec cx", expected: LineInstructions},
		{line: "cmp al, es:x[si]", expected: LineInstructions},
		{line: "xor x[di], ebx", expected: LineInstructions},
		{line: "jb start", expected: LineJump},
		{line: "again: jmp start", expected: LineJump},
		{line: "   ; just a comment", expected: LineEmpty},
		{line: "mov x[bx], 1", expected: LineError},
		{line: "inc x[cx]", expected: LineError},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.line, func(t *testing.T) {
			require.Equal(t, tc.expected, Classify(tc.line))
		})
	}
}

func TestClassify_Label(t *testing.T) {
	c := classify(Lex("again: jmp start"))
	require.NotNil(t, c.label)
	require.Equal(t, "again", c.label.Value)
	require.Equal(t, "JMP ID", c.template)
	require.Equal(t, 23, c.index)
	require.Len(t, c.lexemes, 2)

	c = classify(Lex("again:"))
	require.Nil(t, c.label)
	require.Equal(t, 5, c.index)
}
