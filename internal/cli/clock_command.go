package cli

import (
	"context"

	"farm-tracker/internal/api"
)

// ClockCommand handles clock in, clock out and status
type ClockCommand struct {
	app *App
}

// NewClockCommand creates a new clock command handler
func NewClockCommand(app *App) *ClockCommand {
	return &ClockCommand{app: app}
}

// In clocks the worker in. Clocking in twice reports the open block.
func (c *ClockCommand) In(ctx context.Context, workerID string) error {
	event, err := c.app.businessAPI.ClockIn(ctx, workerID)
	if err != nil {
		return c.app.errors.Handle("clock in", err)
	}

	b := event.Block
	c.app.printf("%s clocked in at %s (block %d)\n",
		event.Worker.Name, b.ClockInTime.Local().Format("15:04"), b.BlockNumber)
	c.app.printf("Today: %s hours\n", api.FormatHours(event.DayHours))
	return nil
}

// Out clocks the worker out. Having nothing to close is not a failure.
func (c *ClockCommand) Out(ctx context.Context, workerID string) error {
	event, err := c.app.businessAPI.ClockOut(ctx, workerID)
	if err != nil {
		if c.app.errors.IsNoOpenBlock(err) {
			c.app.printf("%s\n", c.app.errors.HandleSimple(err))
			return nil
		}
		return c.app.errors.Handle("clock out", err)
	}

	b := event.Block
	c.app.printf("%s clocked out at %s (block %d, %s hours)\n",
		event.Worker.Name, c.app.formatTime(b.ClockOutTime), b.BlockNumber, api.FormatHours(b.HoursWorked))
	c.app.printf("Today: %s hours\n", api.FormatHours(event.DayHours))
	return nil
}

// Status prints whether the worker is on the clock and today's hours
func (c *ClockCommand) Status(ctx context.Context, workerID string) error {
	status, err := c.app.businessAPI.GetClockStatus(ctx, workerID)
	if err != nil {
		return c.app.errors.Handle("get clock status", err)
	}

	if status.IsClockedIn {
		c.app.printf("%s is clocked in since %s (%s), block %d\n",
			status.Worker.Name,
			status.OpenBlock.ClockInTime.Local().Format("15:04"),
			status.OpenSince,
			status.OpenBlock.BlockNumber)
	} else {
		c.app.printf("%s is not clocked in\n", status.Worker.Name)
	}
	c.app.printf("Today: %s hours in %d block(s)\n", api.FormatHours(status.DayHours), status.BlockCount)
	return nil
}
