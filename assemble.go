package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
	"github.gatech.edu/ECEInnovation/x86-Translator/config"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
    trasm assemble <asmFile> <lstFile> [-clfa]
        -c - also print the listing to the console
        -l - write the lexeme dump to <lstFile>.lex
        -f - write the first pass listing to <lstFile>.flst
        -a - print the assume table after each ASSUME line
    trasm languageServer [debug]
    trasm web <asmFile>
    trasm (no arguments) - language server over TCP`)
}

// withDefaultExtension appends ext to path when the file name has no extension.
func withDefaultExtension(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}

// listingPath makes sure the listing file ends in .lst.
func listingPath(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".lst") {
		return path + ".lst"
	}
	return path
}

// siblingPath replaces the extension of the listing path with suffix.
func siblingPath(lstPath, suffix string) string {
	return strings.TrimSuffix(lstPath, filepath.Ext(lstPath)) + suffix
}

// runAssemble translates asmPath and writes the listing and the optional outputs, reporting
// the files written to out.
func runAssemble(out io.Writer, conf *config.Config, asmPath, lstPath string, opts listing.Options) error {
	asmPath = withDefaultExtension(asmPath, ".asm")
	lstPath = listingPath(lstPath)

	b, err := os.ReadFile(asmPath)
	if err != nil {
		return xerrors.Errorf("could not read %s: %w", asmPath, err)
	}

	res := assembler.Assemble(string(b))
	header := listing.Header{Title: conf.Title, Generated: time.Now()}
	lines := listing.Render(res, opts)

	if opts.Console {
		if err := listing.Print(os.Stdout, header, lines); err != nil {
			return err
		}
	}
	if err := listing.WriteFile(lstPath, header, lines); err != nil {
		return err
	}
	fmt.Fprintf(out, "Input file: %s\nOutput file: %s\n", asmPath, lstPath)

	if opts.FirstPass {
		firstPassPath := siblingPath(lstPath, conf.FirstPassSuffix)
		if err := listing.WriteFile(firstPassPath, header, listing.RenderFirstPass(res)); err != nil {
			return err
		}
		fmt.Fprintf(out, "First pass file: %s\n", firstPassPath)
	}

	if opts.Lexemes {
		lexemePath := siblingPath(lstPath, conf.LexemeSuffix)
		if err := listing.WriteFile(lexemePath, listing.Header{}, listing.LexemeDump(assembler.SplitLines(string(b)))); err != nil {
			return err
		}
		fmt.Fprintf(out, "Lexeme file: %s\n", lexemePath)
	}

	for _, line := range listing.ErrorSummary(res.ErrorLines) {
		fmt.Fprintln(out, line)
	}
	return nil
}
