package languageServer

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
)

func (s *Server) hoverRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	doc, ok := s.document(decodedParams.TextDocument.URI)
	if !ok || doc.lastAssembledResult == nil {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	text, ok := doc.lastAssembledResult.EvaluateHover(decodedParams.Position)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	conn.Reply(context.Background(), req.ID, Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: text,
		},
	})
}
