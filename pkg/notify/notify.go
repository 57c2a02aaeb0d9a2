// Package notify is the user-facing notification side-channel for sync outcomes.
package notify

import (
	"strings"

	"github.com/rs/zerolog"
)

// Notifier receives user-facing operation outcomes. Implementations must be
// safe for concurrent use; the presentation layer typically surfaces these as
// toasts.
type Notifier interface {
	// Success reports a completed operation.
	Success(msg string)
	// Error reports a failed operation the user must re-trigger manually.
	Error(msg string)
}

// LogNotifier emits notifications as structured log entries. It is the
// default sink when the presentation layer does not install its own.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Success writes an info-level notice entry.
func (n *LogNotifier) Success(msg string) {
	if n == nil {
		return
	}
	n.logger.Info().Str("event", "notice.success").Msg(strings.TrimSpace(msg))
}

// Error writes an error-level notice entry.
func (n *LogNotifier) Error(msg string) {
	if n == nil {
		return
	}
	n.logger.Error().Str("event", "notice.error").Msg(strings.TrimSpace(msg))
}
