package listing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
)

const source = `data segment
x dw 0
data ends

code segment
assume cs:code, ds:data
inc x[bx]
jb fwd
mov al, 300
fwd:
code ends
end
`

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions("-cf")
	require.NoError(t, err)
	require.Equal(t, Options{Console: true, FirstPass: true}, o)
	require.Equal(t, "cf", o.String())

	o, err = ParseOptions("alfc")
	require.NoError(t, err)
	require.Equal(t, "clfa", o.String())

	_, err = ParseOptions("-x")
	require.EqualError(t, err, `unknown option 'x' in "-x"`)

	_, err = ParseOptions("-cc")
	require.Error(t, err)

	o, err = ParseOptions("")
	require.NoError(t, err)
	require.Equal(t, Options{}, o)

	require.Equal(t, Options{Console: true, Assume: true}, Options{Console: true}.Merge(Options{Assume: true}))
}

func TestRender(t *testing.T) {
	res := assembler.Assemble(source)
	lines := Render(res, Options{})

	require.Equal(t, []string{
		"  1 0000                         data segment",
		"  2 0000    0000                 x dw 0",
		"  3 0002                         data ends",
		"",
		"  5 0000                         code segment",
		"                             assume cs:code, ds:data",
		"  7 0000    FE 87 0000           inc x[bx]",
		"  8 0004    72 02 90 90          jb fwd",
		ErrorMarker + "  9 0008                         mov al, 300",
		" 10 0008                         fwd:",
		" 11 0008                         code ends",
		" 12 0008                         end",
		"",
		"Segment  Size",
		"data     0002",
		"code     0008",
		"",
		"Name     Type     Address",
		"x        DW       data:0000",
		"fwd      LABEL    code:0008",
		"",
		"Errors: 1",
		"Error lines: 9",
	}, lines)
}

func TestRender_Assume(t *testing.T) {
	res := assembler.Assemble(source)
	lines := Render(res, Options{Assume: true})
	require.Equal(t, "                             assume cs:code, ds:data", lines[5])
	require.Equal(t, []string{
		"Segment  Register",
		"NOTHING  ES",
		"CODE     CS",
		"NOTHING  SS",
		"DATA     DS",
		"NOTHING  FS",
		"NOTHING  GS",
	}, lines[6:13])
}

func TestRenderFirstPass(t *testing.T) {
	res := assembler.Assemble(source)
	lines := RenderFirstPass(res)
	require.Len(t, lines, 12)
	require.Equal(t, "  8 0004    90 90 90 90          jb fwd", lines[7])

	// the assume option only affects the final listing
	require.Len(t, Render(res, Options{Assume: true}), len(Render(res, Options{}))+7)
	require.Equal(t, "                             assume cs:code, ds:data", lines[5])
	require.True(t, strings.HasPrefix(lines[6], "  7 0000    FE 87 0000"), lines[6])
}

func TestErrorSummary(t *testing.T) {
	require.Equal(t, []string{"Errors: 0"}, ErrorSummary(nil))
	require.Equal(t, []string{"Errors: 3", "Error lines: 4 2 9"}, ErrorSummary([]int{4, 2, 9}))
}

func TestLexemeDump(t *testing.T) {
	lines := LexemeDump([]string{"; header", "", "mov ax, 10h"})
	require.Equal(t, []string{
		"Source line: mov ax, 10h",
		"No       Lexeme   Length   Type",
		"1        mov      3        Instruction mnemonic",
		"2        ax       2        General purpose register",
		"3        ,        1        Single character",
		"4        10h      3        Hexadecimal constant",
		"",
	}, lines)
}

func TestWrite(t *testing.T) {
	buf := bytes.Buffer{}
	header := Header{Title: "Test listing", Generated: time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC)}
	require.NoError(t, Write(&buf, header, []string{"a", "b"}))
	require.Equal(t, "Test listing\nGenerated: 07/03/2024 09:05:02\na\nb\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, Header{}, []string{"a"}))
	require.Equal(t, "a\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.lst")
	require.NoError(t, WriteFile(path, Header{Title: "T"}, []string{"row"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "T\nrow\n", string(b))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.lst"), Header{}, nil)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "could not create"))
}

func TestHighlight(t *testing.T) {
	lines := []string{"ok", ErrorMarker + "bad"}
	require.Equal(t, lines, Highlight(lines, false))

	highlighted := Highlight(lines, true)
	require.Equal(t, "ok", highlighted[0])
	require.Equal(t, highlightStart+ErrorMarker+"bad"+highlightEnd, highlighted[1])
}
