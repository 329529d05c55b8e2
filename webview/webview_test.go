package webview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
)

const source = `code segment
assume cs:code
start:
cli
jmp start
code ends
end start
`

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestServer(t *testing.T, sourcePath string) *httptest.Server {
	server := httptest.NewServer(NewServer(sourcePath, listing.Options{}).Handler())
	t.Cleanup(server.Close)
	return server
}

func TestPage(t *testing.T) {
	server := newTestServer(t, "")

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	require.Contains(t, string(body), "<title>x86 Translator</title>")

	// a dropped socket is reopened with its handlers attached again
	require.Contains(t, string(body), "function connect()")
	require.Contains(t, string(body), "setTimeout(connect, 3000)")
	require.Equal(t, 1, strings.Count(string(body), "new WebSocket("))
}

func TestAssembleMessage(t *testing.T) {
	conn := dial(t, newTestServer(t, ""))

	require.NoError(t, conn.WriteJSON(request{Type: "assemble", Text: source}))

	reply := listingMessage{}
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "listing", reply.Type)
	require.Equal(t, 0, reply.Errors)
	require.Equal(t, strings.Join(listing.Render(assembler.Assemble(source), listing.Options{}), "\n"), reply.Text)
	require.Contains(t, reply.Text, "  4 0000    FA")
}

func TestRunMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.asm")
	require.NoError(t, os.WriteFile(path, []byte("cli\nbogus line\n"), 0644))
	conn := dial(t, newTestServer(t, path))

	// unknown messages are ignored
	require.NoError(t, conn.WriteJSON(request{Type: "stop"}))
	require.NoError(t, conn.WriteJSON(request{Type: "run"}))

	reply := listingMessage{}
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "listing", reply.Type)
	require.Equal(t, 1, reply.Errors)
	require.Contains(t, reply.Text, listing.ErrorMarker)
}

func TestRunMissingFile(t *testing.T) {
	conn := dial(t, newTestServer(t, filepath.Join(t.TempDir(), "missing.asm")))

	require.NoError(t, conn.WriteJSON(request{Type: "run"}))

	reply := consoleMessage{}
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "console", reply.Type)
	require.Contains(t, reply.Text, "missing.asm")
}
