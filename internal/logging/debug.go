// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DebugEnv forces debug output when set to any non-empty value.
const DebugEnv = "FARM_DEBUG"

// DebugEnabled returns true if debug mode is enabled via FARM_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Level picks the log level for the verbose flag and FARM_DEBUG.
func Level(verbose bool) zerolog.Level {
	if verbose || DebugEnabled() {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Setup builds the application logger writing to w, installs it as the
// global zerolog logger and returns it. Terminals get console output,
// anything else gets JSON lines.
func Setup(verbose bool, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(Level(verbose)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
