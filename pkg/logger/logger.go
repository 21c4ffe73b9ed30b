// Package logger configures the process-wide zerolog logger.
//
// Call Init once from main, then pass the returned logger (or derive
// children with With) into the packages that need one.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	root zerolog.Logger
	set  bool
)

// Init builds the root logger. In the development environment output is
// rendered through the console writer; everywhere else it is plain JSON.
// Subsequent calls replace the root, which only tests should do.
func Init(level, env string, out io.Writer) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		out = os.Stdout
	}
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	root = zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
	set = true
	return root
}

// Get returns the root logger, initialising a sane default if Init was
// never called (tests and tooling hit this path).
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !set {
		root = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
		set = true
	}
	return root
}

// With returns a child logger tagged with the given component name.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
