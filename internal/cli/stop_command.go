package cli

import (
	"context"
	"fmt"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute finishes the running session. It is a no-op when idle.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "stop", "usage: wt stop")
	}

	l := c.app.labels()
	entry, err := c.businessAPI.StopWork(ctx)
	if c.errorHandler.IsNoActiveSession(err) {
		c.app.println(c.app.styles.Idle.Render(l.NoSession))
		return nil
	}
	if err != nil {
		return c.errorHandler.Handle("stop work", err)
	}

	c.app.println(c.app.styles.Working.Render(fmt.Sprintf("%s %s", l.StopWork, entry.EndTime.Format(timeLayout))))
	c.app.println(formatEntryLine(l, *entry))
	return nil
}
