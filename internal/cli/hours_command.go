package cli

import (
	"context"
	"fmt"

	"farm-tracker/internal/api"
)

// HoursCommand prints daily and weekly totals
type HoursCommand struct {
	app *App
}

// NewHoursCommand creates a new hours command handler
func NewHoursCommand(app *App) *HoursCommand {
	return &HoursCommand{app: app}
}

// Day prints each block of the day and the total
func (c *HoursCommand) Day(ctx context.Context, workerID, date string) error {
	day, err := c.app.parseDate(date)
	if err != nil {
		return err
	}

	summary, err := c.app.businessAPI.GetDaySummary(ctx, workerID, day)
	if err != nil {
		return c.app.errors.Handle("get daily hours", err)
	}

	c.app.printf("%s\n", summary.Date.Format("Monday "+c.app.dateFormat()))
	if len(summary.Blocks) == 0 {
		c.app.printf("No time blocks\n")
		return nil
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "BLOCK\tIN\tOUT\tHOURS")
	now := c.app.clock.Now()
	for _, b := range summary.Blocks {
		out := "open"
		if b.ClockOutTime != nil {
			out = b.ClockOutTime.Local().Format("15:04")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", b.BlockNumber, b.ClockInTime.Local().Format("15:04"), out, api.FormatHours(b.Hours(now)))
	}
	fmt.Fprintf(tw, "\t\tTotal\t%s\n", api.FormatHours(summary.TotalHours))
	return tw.Flush()
}

// Week prints the Monday to Sunday breakdown. offset moves whole weeks
// back (negative) or forward from the week containing date.
func (c *HoursCommand) Week(ctx context.Context, workerID, date string, offset int) error {
	ref, err := c.app.parseDate(date)
	if err != nil {
		return err
	}

	summary, err := c.app.businessAPI.GetWeekSummary(ctx, workerID, ref, offset)
	if err != nil {
		return c.app.errors.Handle("get weekly hours", err)
	}

	c.app.printf("Week %d of %d (%s to %s)\n",
		summary.WeekNumber, summary.Year,
		summary.WeekStart.Format(c.app.dateFormat()),
		summary.WeekEnd.AddDate(0, 0, -1).Format(c.app.dateFormat()))

	tw := c.app.table()
	for _, d := range summary.Days {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Date.Format("Mon"), d.Date.Format(c.app.dateFormat()), api.FormatHours(d.Hours))
	}
	fmt.Fprintf(tw, "Total\t\t%s\n", api.FormatHours(summary.TotalHours))
	if err := tw.Flush(); err != nil {
		return err
	}

	if summary.IsOvertime {
		c.app.printf("Overtime: %s hours\n", api.FormatHours(summary.OvertimeHours))
	}
	return nil
}
