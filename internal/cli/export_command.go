package cli

import (
	"context"
	"fmt"
	"os"

	"farm-tracker/internal/export"
)

// ExportCommand writes timesheets to files
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Week writes the worker's timesheet for the selected week. An empty path
// names the file after the worker and ISO week.
func (c *ExportCommand) Week(ctx context.Context, workerID, date string, offset int, format, path string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	ref, err := c.app.parseDate(date)
	if err != nil {
		return err
	}

	sheet, err := c.app.businessAPI.GetTimesheet(ctx, workerID, ref, offset)
	if err != nil {
		return c.app.errors.Handle("build timesheet", err)
	}

	if path == "" {
		path = export.Filename(sheet, f)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	opts := export.Options{DateFormat: c.app.dateFormat(), Now: c.app.clock.Now()}
	if err := export.Write(out, sheet, f, opts); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	c.app.logger.Debug().Str("path", path).Str("format", string(f)).Msg("timesheet exported")
	c.app.printf("Wrote %s (%d blocks)\n", path, len(sheet.Blocks()))
	return nil
}
