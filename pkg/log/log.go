// Package log provides the zerolog-backed structured logger used by the
// selection algorithms. It carries the library's standard attribute keys so
// that per-iteration and per-fold progress can be filtered and analysed.
package log

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scigo-ml/rfa/pkg/errors"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// Setup configures the global logger level and wires library warnings into
// zerolog. Valid levels: "debug", "info", "warn", "error", "disabled".
func Setup(level string) {
	mu.Lock()
	logger = logger.Level(toLevel(level))
	mu.Unlock()

	errors.SetZerologWarnFunc(func(warning error) {
		l := Logger()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			l.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		l.Warn().Err(warning).Msg("warning")
	})
}

// SetLogger replaces the global logger. Useful in tests to capture output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a contextual logger pre-populated with the model name, in
// the way estimators tag their log entries.
func With(modelName string) zerolog.Logger {
	return Logger().With().Str(ModelNameKey, modelName).Logger()
}

func toLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
