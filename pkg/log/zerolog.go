package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// NewConsoleLogger builds a zerolog logger with human-readable console output,
// intended for interactive CLI runs.
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// BridgeWarnings routes library warnings (ConvergenceWarning and friends)
// through the given zerolog logger. Warning types implementing
// zerolog.LogObjectMarshaler are embedded as structured objects.
func BridgeWarnings(logger zerolog.Logger) {
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.EmbedObject(m)
		}
		event.Msg(warning.Error())
	})
}
