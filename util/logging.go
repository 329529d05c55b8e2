package util

import (
	"fmt"
	"net/http"
	"strings"
)

var LoggingEnabled = false

// LogEndpoint receives debug log lines as plain text POSTs.
var LogEndpoint = "http://localhost:8006/log"

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)
	go http.Post(LogEndpoint, "text/plain", strings.NewReader(message))
}
