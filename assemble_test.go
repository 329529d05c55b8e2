package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/x86-Translator/config"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
)

func TestPaths(t *testing.T) {
	require.Equal(t, "prog.asm", withDefaultExtension("prog", ".asm"))
	require.Equal(t, "prog.txt", withDefaultExtension("prog.txt", ".asm"))
	require.Equal(t, "out.lst", listingPath("out"))
	require.Equal(t, "out.LST", listingPath("out.LST"))
	require.Equal(t, "out.txt.lst", listingPath("out.txt"))
	require.Equal(t, filepath.Join("dir", "out.flst"), siblingPath(filepath.Join("dir", "out.lst"), ".flst"))
}

func TestRunAssemble(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prog.asm"), []byte("cli\nbogus line\n"), 0644))

	out := bytes.Buffer{}
	opts := listing.Options{FirstPass: true, Lexemes: true}
	err := runAssemble(&out, config.Default(), filepath.Join(dir, "prog"), filepath.Join(dir, "prog"), opts)
	require.NoError(t, err)

	lst, err := os.ReadFile(filepath.Join(dir, "prog.lst"))
	require.NoError(t, err)
	lines := strings.Split(string(lst), "\n")
	require.Equal(t, "x86 Translator listing", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Generated: "))
	require.Equal(t, "  1 0000    FA                   cli", lines[2])
	require.True(t, strings.HasPrefix(lines[3], listing.ErrorMarker))

	_, err = os.Stat(filepath.Join(dir, "prog.flst"))
	require.NoError(t, err)

	lex, err := os.ReadFile(filepath.Join(dir, "prog.lex"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(lex), "Source line: cli\n"))

	report := out.String()
	require.Contains(t, report, "Output file: "+filepath.Join(dir, "prog.lst"))
	require.Contains(t, report, "First pass file: "+filepath.Join(dir, "prog.flst"))
	require.Contains(t, report, "Lexeme file: "+filepath.Join(dir, "prog.lex"))
	require.Contains(t, report, "Errors: 1\nError lines: 2\n")
}

func TestRunAssemble_MissingSource(t *testing.T) {
	err := runAssemble(&bytes.Buffer{}, config.Default(), filepath.Join(t.TempDir(), "missing"), "out", listing.Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.asm")
}
