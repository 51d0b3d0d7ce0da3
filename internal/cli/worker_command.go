package cli

import (
	"context"
	"fmt"

	"farm-tracker/internal/domain"
)

// WorkerCommand handles the worker subcommands
type WorkerCommand struct {
	app *App
}

// NewWorkerCommand creates a new worker command handler
func NewWorkerCommand(app *App) *WorkerCommand {
	return &WorkerCommand{app: app}
}

// Add onboards a worker
func (c *WorkerCommand) Add(ctx context.Context, draft domain.WorkerDraft) error {
	worker, err := c.app.businessAPI.OnboardWorker(ctx, draft)
	if err != nil {
		return c.app.errors.Handle("add worker", err)
	}
	c.app.printf("Added %s\nID: %s\n", worker, worker.ID)
	return nil
}

// List prints workers, active ones only unless all is set
func (c *WorkerCommand) List(ctx context.Context, all bool) error {
	workers, err := c.app.businessAPI.ListWorkers(ctx, !all)
	if err != nil {
		return c.app.errors.Handle("list workers", err)
	}
	if len(workers) == 0 {
		c.app.printf("No workers found\n")
		return nil
	}

	tw := c.app.table()
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tACTIVE")
	for _, w := range workers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", w.ID, w.Name, w.Position, w.IsActive)
	}
	return tw.Flush()
}

// Show prints one worker and whether they are on the clock
func (c *WorkerCommand) Show(ctx context.Context, id string) error {
	status, err := c.app.businessAPI.GetClockStatus(ctx, id)
	if err != nil {
		return c.app.errors.Handle("show worker", err)
	}

	w := status.Worker
	c.app.printf("%s\n", w)
	c.app.printf("  ID:        %s\n", w.ID)
	if w.Phone != "" {
		c.app.printf("  Phone:     %s\n", w.Phone)
	}
	if w.Email != "" {
		c.app.printf("  Email:     %s\n", w.Email)
	}
	if w.HireDate != nil {
		c.app.printf("  Hired:     %s\n", w.HireDate.Format(c.app.dateFormat()))
	}
	c.app.printf("  Active:    %t\n", w.IsActive)
	c.app.printf("  On clock:  %t\n", status.IsClockedIn)
	return nil
}

// Deactivate off-boards a worker; their time records stay
func (c *WorkerCommand) Deactivate(ctx context.Context, id string) error {
	worker, err := c.app.businessAPI.DeactivateWorker(ctx, id)
	if err != nil {
		return c.app.errors.Handle("deactivate worker", err)
	}
	c.app.printf("Deactivated %s\n", worker.Name)
	return nil
}
