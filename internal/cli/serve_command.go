package cli

import (
	"context"

	"farm-tracker/internal/server"
)

// ServeCommand runs the HTTP API until ctx is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute blocks serving requests
func (c *ServeCommand) Execute(ctx context.Context) error {
	srv := server.New(c.app.config.Server, c.app.businessAPI, c.app.clock, c.app.logger)
	c.app.printf("Listening on %s\n", c.app.config.Server.Address)
	return srv.Run(ctx)
}
