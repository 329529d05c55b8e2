package listing

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
)

// ErrorMarker prefixes every row of a line that failed to assemble.
const ErrorMarker = "Syntax error! : "

// Options selects the optional outputs of a translation.
type Options struct {
	Console   bool // c: print the listing to stdout
	Lexemes   bool // l: write the lexeme dump
	FirstPass bool // f: write the pass one listing
	Assume    bool // a: print the assume table after each ASSUME line
}

// ParseOptions reads option letters such as "-cf" or "la". Each letter may appear once.
func ParseOptions(s string) (Options, error) {
	o := Options{}
	seen := map[rune]bool{}
	for _, c := range strings.TrimPrefix(s, "-") {
		if seen[c] {
			return Options{}, xerrors.Errorf("option %q given twice in %q", c, s)
		}
		seen[c] = true

		switch c {
		case 'c':
			o.Console = true
		case 'l':
			o.Lexemes = true
		case 'f':
			o.FirstPass = true
		case 'a':
			o.Assume = true
		default:
			return Options{}, xerrors.Errorf("unknown option %q in %q", c, s)
		}
	}
	return o, nil
}

// Merge returns the options enabled in either o or other.
func (o Options) Merge(other Options) Options {
	return Options{
		Console:   o.Console || other.Console,
		Lexemes:   o.Lexemes || other.Lexemes,
		FirstPass: o.FirstPass || other.FirstPass,
		Assume:    o.Assume || other.Assume,
	}
}

func (o Options) String() string {
	s := ""
	if o.Console {
		s += "c"
	}
	if o.Lexemes {
		s += "l"
	}
	if o.FirstPass {
		s += "f"
	}
	if o.Assume {
		s += "a"
	}
	return s
}

// Row formats one line record: "<line> <offset>    <op code> <text>". ASSUME lines are
// indented instead of numbered, incorrect lines carry the error marker and empty lines stay
// empty.
func Row(line assembler.LineInfo) string {
	if line.Type == assembler.LineEmpty {
		return ""
	}

	row := fmt.Sprintf("%-20s %s", line.OpCode, line.Text)
	if line.Type == assembler.LineAssume {
		row = "        " + row
	} else {
		row = fmt.Sprintf("%3d %04X    ", line.Number, line.Address) + row
	}

	if !line.Correct {
		return ErrorMarker + row
	}
	return row
}

func rows(lines []assembler.LineInfo, opts Options) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, Row(line))
		if opts.Assume && line.Correct && line.Assume != nil {
			out = append(out, AssumeTable(*line.Assume)...)
		}
	}
	return out
}

// Render builds the final listing: one row per source line followed by the segment table,
// the identifier table and the error summary.
func Render(res *assembler.AssembledResult, opts Options) []string {
	out := rows(res.Lines, opts)
	out = append(out, "")
	out = append(out, SegmentTable(res.Segments)...)
	out = append(out, "")
	out = append(out, IdentifierTable(res.Identifiers)...)
	out = append(out, "")
	return append(out, ErrorSummary(res.ErrorLines)...)
}

// RenderFirstPass builds the rows of the listing as they were before jumps were resolved.
// Assume tables are only part of the final listing.
func RenderFirstPass(res *assembler.AssembledResult) []string {
	return rows(res.FirstPass, Options{})
}

func AssumeTable(a assembler.AssumeTable) []string {
	out := []string{"Segment  Register"}
	for i, name := range a {
		out = append(out, fmt.Sprintf("%-8s %s", name, assembler.SegRegister(i)))
	}
	return out
}

func SegmentTable(segs []assembler.SegInfo) []string {
	out := []string{"Segment  Size"}
	for _, seg := range segs {
		out = append(out, fmt.Sprintf("%-8s %-4s", seg.Name, fmt.Sprintf("%04X", seg.Size)))
	}
	return out
}

func IdentifierTable(ids []assembler.IdInfo) []string {
	out := []string{"Name     Type     Address"}
	for _, id := range ids {
		out = append(out, fmt.Sprintf("%-8s %-8s %s:%04X", id.Name, id.Type, id.Segment, id.Offset))
	}
	return out
}

// ErrorSummary is the error count followed by the offending line numbers, in the order the
// errors were found.
func ErrorSummary(errorLines []int) []string {
	out := []string{"Errors: " + strconv.Itoa(len(errorLines))}
	if len(errorLines) == 0 {
		return out
	}
	numbers := make([]string, len(errorLines))
	for i, n := range errorLines {
		numbers[i] = strconv.Itoa(n)
	}
	return append(out, "Error lines: "+strings.Join(numbers, " "))
}

// LexemeDump lists the lexemes of every source line that is not blank or comment only.
func LexemeDump(source []string) []string {
	out := []string{}
	for _, text := range source {
		lexemes := assembler.Lex(text)
		if len(lexemes) == 0 {
			continue
		}
		out = append(out, "Source line: "+text)
		out = append(out, fmt.Sprintf("%-8s %-8s %-8s %s", "No", "Lexeme", "Length", "Type"))
		for i, l := range lexemes {
			out = append(out, fmt.Sprintf("%-8d %-8s %-8d %s", i+1, l.Value, len(l.Value), l.Type))
		}
		out = append(out, "")
	}
	return out
}
