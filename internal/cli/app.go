package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/config"
)

// App carries what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	clock       clock.Clock
	logger      zerolog.Logger
	out         io.Writer
	errors      *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, clk clock.Clock, logger zerolog.Logger, out io.Writer) *App {
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		clock:       clk,
		logger:      logger,
		out:         out,
		errors:      NewErrorHandler(),
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// table returns a writer that aligns tab separated columns; call Flush when done.
func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) dateFormat() string {
	if a.config != nil && a.config.Time.DateFormat != "" {
		return a.config.Time.DateFormat
	}
	return "2006-01-02"
}

func (a *App) displayFormat() string {
	if a.config != nil && a.config.Time.DisplayFormat != "" {
		return a.config.Time.DisplayFormat
	}
	return "2006-01-02 15:04"
}

// parseDate reads a local calendar date. An empty value means today.
func (a *App) parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return a.clock.Now(), nil
	}
	t, err := time.ParseInLocation(a.dateFormat(), s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format %s", s, a.dateFormat())
	}
	return t, nil
}

func (a *App) formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(a.displayFormat())
}
