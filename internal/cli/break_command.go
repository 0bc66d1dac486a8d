package cli

import (
	"context"
	"fmt"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// BreakCommand starts or ends a break
type BreakCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewBreakCommand creates a new break command handler
func NewBreakCommand(app *App) *BreakCommand {
	return &BreakCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the break command. It is a no-op when no session is running.
func (c *BreakCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "break", "usage: wt break")
	}

	l := c.app.labels()
	onBreak, err := c.businessAPI.ToggleBreak(ctx)
	if c.errorHandler.IsNoActiveSession(err) {
		c.app.println(c.app.styles.Idle.Render(l.NoSession))
		return nil
	}
	if err != nil {
		return c.errorHandler.Handle("toggle break", err)
	}

	status := c.businessAPI.Status(timeNow())
	if onBreak {
		c.app.println(c.app.styles.Break.Render(fmt.Sprintf("%s %s", l.OnBreakSince, status.BreakStart.Format(timeLayout))))
		return nil
	}
	c.app.println(c.app.styles.Working.Render(fmt.Sprintf("%s (%d %s)", l.EndBreak, status.TotalBreakMinutes, l.MinutesShort)))
	return nil
}
