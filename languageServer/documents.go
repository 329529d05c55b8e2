package languageServer

import (
	"context"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
	"github.gatech.edu/ECEInnovation/x86-Translator/util"
)

func (s *Server) assembleAndReportDiagnostics(uri DocumentURI) []assembler.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.documentMap[string(uri)]
	assembledRes := assembler.Assemble(doc.Text)
	if assembledRes.Diagnostics == nil {
		assembledRes.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.lastAssembledResult = assembledRes
	s.documentMap[string(uri)] = doc
	return assembledRes.Diagnostics
}

func (s *Server) document(uri DocumentURI) (TextDocumentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documentMap[string(uri)]
	return doc, ok
}

func (s *Server) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	s.mu.Lock()
	s.documentMap[string(decodedParams.TextDocument.URI)] = decodedParams.TextDocument
	s.mu.Unlock()

	diagnostics := s.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (s *Server) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	s.mu.Lock()
	delete(s.documentMap, string(decodedParams.TextDocument.URI))
	s.mu.Unlock()
}

func (s *Server) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(req, &decodedParams) || len(decodedParams.ContentChanges) == 0 {
		replyInvalidParams(conn, req)
		return
	}

	s.mu.Lock()
	doc := s.documentMap[string(decodedParams.TextDocument.URI)]
	doc.URI = decodedParams.TextDocument.URI
	doc.Text = decodedParams.ContentChanges[0].Text
	doc.Version = decodedParams.TextDocument.Version
	s.documentMap[string(decodedParams.TextDocument.URI)] = doc
	s.mu.Unlock()

	diagnostics := s.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func (s *Server) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	diagnostics := s.assembleAndReportDiagnostics(decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// splitComment separates the code of a line from its comment, keeping the ';'.
func splitComment(line string) (string, string) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}

// collapseSpaces trims the line and replaces runs of blanks between tokens with one space.
// Text constants are copied unchanged.
func collapseSpaces(code string) string {
	b := strings.Builder{}
	inString, pendingSpace := false, false
	for _, c := range strings.TrimSpace(code) {
		switch {
		case c == '\'':
			inString = !inString
		case !inString && (c == ' ' || c == '\t'):
			pendingSpace = true
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ReformatDocument puts labels and directives flush left and indents instructions past
// the longest label. Each line keeps its own line ending.
func ReformatDocument(text string) string {
	assembledRes := assembler.Assemble(text)

	maxLabelLength := 0
	for _, id := range assembledRes.Identifiers {
		if id.Type == assembler.IdLabel && len(id.Name) > maxLabelLength {
			maxLabelLength = len(id.Name)
		}
	}
	indent := strings.Repeat(" ", maxLabelLength+2)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		ending := ""
		if strings.HasSuffix(line, "\r") {
			line, ending = line[:len(line)-1], "\r"
		}
		code, comment := splitComment(line)
		code = collapseSpaces(code)

		lexemes := assembler.Lex(code)
		switch {
		case code == "":
		case len(lexemes) > 2 && lexemes[0].Type == assembler.LexemeUserIdentifier && lexemes[1].Value == ":":
			// label followed by an instruction on the same line
			label := lexemes[0].Value
			rest := strings.TrimSpace(code[lexemes[1].End():])
			pad := len(indent) - len(label) - 1
			if pad < 1 {
				pad = 1
			}
			code = label + ":" + strings.Repeat(" ", pad) + rest
		default:
			lineType := assembler.Classify(code)
			if lineType == assembler.LineInstructions || lineType == assembler.LineJump {
				code = indent + code
			}
		}

		if code != "" && comment != "" {
			code += " "
		}
		lines[i] = code + comment + ending
	}
	return strings.Join(lines, "\n")
}

func (s *Server) documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	doc, _ := s.document(decodedParams.TextDocument.URI)
	lines := strings.Split(doc.Text, "\n")

	edits := make([]TextEdit, 0)
	edits = append(edits, TextEdit{
		Range: assembler.TextRange{
			Start: assembler.TextPosition{Line: 0, Char: 0},
			End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
		},
		NewText: ReformatDocument(doc.Text),
	})

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("x86 Language Server: reformatted document")
}
