package ui

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/relcheck/relcheck/internal/config"
)

// zerologAdapter implements config.Logger on top of zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

// NewLogger creates a console logger for diagnostics. With verbose false
// only warnings and errors are emitted.
func NewLogger(w io.Writer, verbose bool) config.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, NoColor: !colorEnabled(w)}
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()

	return &zerologAdapter{log: logger}
}

func (z *zerologAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.emit(z.log.Debug(), msg, keysAndValues)
}

func (z *zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.emit(z.log.Info(), msg, keysAndValues)
}

func (z *zerologAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.emit(z.log.Warn(), msg, keysAndValues)
}

func (z *zerologAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.emit(z.log.Error(), msg, keysAndValues)
}

// emit attaches the key-value pairs to the event. A trailing key without a
// value is logged as-is under the "extra" field rather than dropped.
func (z *zerologAdapter) emit(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		event = event.Interface("extra", keysAndValues[len(keysAndValues)-1])
	}
	event.Msg(msg)
}
