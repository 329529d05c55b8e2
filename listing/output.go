package listing

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

const (
	highlightStart = "\x1b[31m"
	highlightEnd   = "\x1b[0m"
)

// Header is printed above a listing. A zero Header prints nothing.
type Header struct {
	Title     string
	Generated time.Time
}

func (h Header) Lines() []string {
	out := []string{}
	if h.Title != "" {
		out = append(out, h.Title)
	}
	if !h.Generated.IsZero() {
		out = append(out, "Generated: "+h.Generated.Format("02/01/2006 15:04:05"))
	}
	return out
}

// Write prints the header and the lines to w, one per line.
func Write(w io.Writer, header Header, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, group := range [][]string{header.Lines(), lines} {
		for _, line := range group {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return xerrors.Errorf("writing listing: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("writing listing: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes the listing to it.
func WriteFile(path string, header Header, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, header, lines); err != nil {
		return xerrors.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Print writes the listing to f. Rows of incorrect lines are highlighted when f is a
// terminal.
func Print(f *os.File, header Header, lines []string) error {
	return Write(f, header, Highlight(lines, term.IsTerminal(int(f.Fd()))))
}

// Highlight colours the rows that carry the error marker.
func Highlight(lines []string, enabled bool) []string {
	if !enabled {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, ErrorMarker) {
			line = highlightStart + line + highlightEnd
		}
		out[i] = line
	}
	return out
}
