package languageServer

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/x86-Translator/util"
)

// LanguageID is the document language the server registers for.
const LanguageID = "x86asm"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// Server handles one client connection. Open documents are kept per server.
type Server struct {
	mu          sync.Mutex
	documentMap map[string]TextDocumentItem // map from uri to document
}

func NewServer() *Server {
	return &Server{documentMap: make(map[string]TextDocumentItem)}
}

// ListenAndServe serves a single client over stdin and stdout.
func ListenAndServe() {
	<-jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}), NewServer()).DisconnectNotify()
}

// ListenAndServeTCP accepts clients on addr so the server can be debugged remotely.
func ListenAndServeTCP(addr string) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Could not bind to address %s: %v", addr, err)
	}
	defer lis.Close()

	log.Println("x86 Language Server: listening for TCP connections on", addr)

	connectionCount := 0

	for {
		conn, err := lis.Accept()
		if err != nil {
			log.Fatalf("failed to accept incoming connection: %v", err)
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		log.Printf("x86 Language Server: received incoming connection #%d\n", connectionID)
		jsonrpc2Connection := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}), NewServer())
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			log.Printf("x86 Language Server: connection #%d closed\n", connectionID)
		}()
	}
}

func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("x86 Language Server: received request: %s", req.Method)
	switch req.Method {
	case "textDocument/didOpen":
		s.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		s.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		s.documentChangeNotification(conn, req)
	case "initialize":
		handleInitialize(conn, req)
	case "textDocument/diagnostic":
		s.documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil":
		s.documentWillSaveWaitUntil(conn, req)
	case "textDocument/hover":
		s.hoverRequest(conn, req)

	// quitting
	case "shutdown":
		conn.Reply(context.Background(), req.ID, nil)
		conn.Close()
	case "exit":
		conn.Reply(context.Background(), req.ID, nil)
		conn.Close()
	}
}

func replyInvalidParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
	rpcErr.SetError("invalid parameters")
	conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
}

func decodeParams(req *jsonrpc2.Request, v interface{}) bool {
	if req.Params == nil {
		return false
	}
	return json.Unmarshal(*req.Params, v) == nil
}

func handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(req, &decodedParams) {
		replyInvalidParams(conn, req)
		return
	}

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.DiagnosticProvider = &DiagnosticOptions{}
	conn.Reply(context.Background(), req.ID, result)

	registerRemainingCapabilities(conn)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil is registered dynamically
	util.LogF("x86 Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: LanguageID,
						},
					},
				},
			},
		},
	}

	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}
