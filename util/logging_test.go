package util

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogF(t *testing.T) {
	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received <- string(b)
	}))
	defer server.Close()

	defer func(enabled bool, endpoint string) {
		LoggingEnabled, LogEndpoint = enabled, endpoint
	}(LoggingEnabled, LogEndpoint)
	LogEndpoint = server.URL

	LoggingEnabled = false
	LogF("dropped %d", 1)

	LoggingEnabled = true
	LogF("assembled %d lines", 3)

	select {
	case message := <-received:
		require.Equal(t, "assembled 3 lines", message)
	case <-time.After(5 * time.Second):
		t.Fatal("log message was not posted")
	}
}
