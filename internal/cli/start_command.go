package cli

import (
	"context"
	"fmt"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command. A running session is replaced.
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "start", "usage: wt start")
	}

	previous := c.businessAPI.Status(timeNow())
	status, err := c.businessAPI.StartWork(ctx)
	if err != nil {
		return c.errorHandler.Handle("start work", err)
	}

	l := c.app.labels()
	if previous.Working {
		c.app.println(c.app.styles.Dim.Render(fmt.Sprintf("%s %s", l.StartedAt, previous.StartTime.Format(timeLayout))))
	}
	c.app.println(c.app.styles.Working.Render(fmt.Sprintf("%s %s", l.StartWork, status.StartTime.Format(timeLayout))))
	return nil
}
