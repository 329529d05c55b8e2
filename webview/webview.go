package webview

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/xerrors"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
)

// The translator normally reports through VSCode, but for development there needs to be a way to
// look at listings without it. This hosts a page that assembles a source file on request and shows
// the listing, streamed over a websocket.

type request struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type listingMessage struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Errors int    `json:"errors"`
}

type consoleMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Server answers page and websocket requests for a single source file.
type Server struct {
	SourcePath string
	Options    listing.Options

	upgrader websocket.Upgrader
}

func NewServer(sourcePath string, opts listing.Options) *Server {
	return &Server{
		SourcePath: sourcePath,
		Options:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler routes / to the page and /ws to the websocket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleSocket)
	mux.HandleFunc("/", handleGetPage)
	return mux
}

// RunStandaloneWebserver serves the view of sourcePath on addr until the listener fails.
func RunStandaloneWebserver(sourcePath string, addr string, opts listing.Options) error {
	log.Printf("Connect to the translator at http://localhost%s", addr)
	if err := http.ListenAndServe(addr, NewServer(sourcePath, opts).Handler()); err != nil {
		return xerrors.Errorf("web view on %s: %w", addr, err)
	}
	return nil
}

func (s *Server) assemble(text string) listingMessage {
	res := assembler.Assemble(text)
	lines := listing.Render(res, s.Options)
	return listingMessage{
		Type:   "listing",
		Text:   strings.Join(lines, "\n"),
		Errors: res.ErrorCount(),
	}
}

func (s *Server) readSource() (string, error) {
	b, err := os.ReadFile(s.SourcePath)
	if err != nil {
		return "", xerrors.Errorf("could not read %s: %w", s.SourcePath, err)
	}
	return string(b), nil
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	wsMutex := sync.Mutex{}
	send := func(v interface{}) {
		wsMutex.Lock()
		defer wsMutex.Unlock()
		if err := conn.WriteJSON(v); err != nil {
			log.Println("write:", err)
		}
	}

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("read:", err)
			}
			return
		}

		message := request{}
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			log.Println("json:", err)
			return
		}

		switch message.Type {
		case "run":
			text, err := s.readSource()
			if err != nil {
				log.Println(err)
				send(consoleMessage{Type: "console", Text: err.Error()})
				continue
			}
			send(s.assemble(text))
		case "assemble":
			send(s.assemble(message.Text))
		default:
			log.Printf("Unknown message type: %s", message.Type)
		}
	}
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

var htmlPage = `<html>
<head>
	<title>x86 Translator</title>
</head>
<body style="background-color: #1E1E1E;">
	<h1 style="color: white; display: inline-block;">x86 Translator</h1>
	<button id="runButton" style="margin-left: 50px; height: 40px; width: 100px;">ASSEMBLE</button>
	<span id="errors" style="margin-left: 20px; color: white; font-family: monospace;"></span>
	<h2 style="color: white;">Listing</h2>
	<pre style="width: 980px; padding: 10px; color: white; font-size: 1.1em; background-color: black; height: 600px; overflow-y: auto; border: 2px solid white;" id="listing"></pre>

	<script>
		var socket = null;

		function connect() {
			socket = new WebSocket("ws://" + window.location.host + "/ws");

			socket.onmessage = function(event) {
				var data = JSON.parse(event.data);
				if (data.type == "listing") {
					document.getElementById("listing").textContent = data.text;
					document.getElementById("errors").textContent = "Errors: " + data.errors;
				} else if (data.type == "console") {
					document.getElementById("listing").textContent = data.text;
					document.getElementById("errors").textContent = "";
				}
			};

			// when the socket closes, try to reconnect every 3 seconds
			socket.onclose = function() {
				setTimeout(connect, 3000);
			};
		}

		connect();

		document.getElementById("runButton").onclick = function() {
			if (socket.readyState == WebSocket.OPEN) {
				socket.send(JSON.stringify({
					type: "run"
				}));
			}
		};
	</script>
</body>
</html>`
