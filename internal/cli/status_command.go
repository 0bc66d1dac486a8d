package cli

import (
	"context"
	"fmt"

	"worktime/internal/api"
	"worktime/internal/errors"
	"worktime/internal/i18n"
)

// StatusCommand shows the running session and today's total
type StatusCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "status", "usage: wt status")
	}
	for _, line := range statusLines(c.app.labels(), c.app.styles, c.businessAPI.Status(timeNow())) {
		c.app.println(line)
	}
	return nil
}

// statusLines renders a status snapshot, shared with the dashboard
func statusLines(l i18n.Labels, s Styles, status *api.Status) []string {
	var lines []string
	switch {
	case status.OnBreak:
		lines = append(lines, s.Break.Render(fmt.Sprintf("%s %s", l.OnBreakSince, status.BreakStart.Format(timeLayout))))
	case status.Working:
		lines = append(lines, s.Working.Render(fmt.Sprintf("%s %s", l.Working, formatClock(status.ElapsedSeconds))))
	default:
		lines = append(lines, s.Idle.Render(l.Idle))
	}

	if status.Working {
		started := fmt.Sprintf("%s %s", l.StartedAt, status.StartTime.Format(timeLayout))
		if status.TotalBreakMinutes > 0 {
			started += fmt.Sprintf(" (%d %s %s)", status.TotalBreakMinutes, l.MinutesShort, l.BreakWord)
		}
		lines = append(lines, s.Dim.Render(started))
	}

	lines = append(lines, fmt.Sprintf("%s %s", l.TodayTotal, l.Duration(status.TodayHours)))
	return lines
}

