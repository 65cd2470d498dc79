// Package workspace implements the LSP workspace/* notification
// handlers plus the window/logMessage helpers the middleware layer
// uses to surface handler errors and warnings to the client.
package workspace

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
)

// LogError logs an error to stderr via internal/log and, if a client
// context is available, notifies the client over window/logMessage.
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	if context != nil {
		go context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeError,
			Message: message,
		})
	}
}

// LogWarning logs a warning to stderr and, if available, the client.
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	if context != nil {
		go context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeWarning,
			Message: message,
		})
	}
}
