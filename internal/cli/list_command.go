package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"worktime/internal/api"
	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/i18n"
	"worktime/internal/services"
)

// ListCommand prints entries grouped by day, newest first
type ListCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	fs := listFlags()
	rest, err := parseFlags(fs, args)
	if err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}
	if len(rest) > 0 {
		return errors.NewInvalidInputError("command", "list", "usage: wt list [--day DATE]")
	}

	days, err := c.businessAPI.ListDays(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	dayFlag, _ := fs.GetString("day")
	if dayFlag != "" {
		day, err := parseDayFlag(dayFlag, timeNow())
		if err != nil {
			return err
		}
		days = filterDays(days, day)
	}

	c.printDays(days)
	return nil
}

func (c *ListCommand) printDays(days []services.DaySummary) {
	l := c.app.labels()
	s := c.app.styles

	if len(days) == 0 {
		c.app.println(s.Dim.Render(l.NoEntries))
		return
	}

	var total float64
	for _, d := range days {
		total += d.WorkedHours
	}
	c.app.println(s.Header.Render(l.EntriesTitle))
	c.app.printf("%s %.2f %s\n", l.TotalWorked, total, l.HoursWord)

	for _, d := range days {
		c.app.println()
		c.app.println(s.Bold.Render(fmt.Sprintf("%s  (%s)", l.LongDate(d.Date), l.Duration(d.WorkedHours))))
		for _, e := range d.Entries {
			c.app.println("  " + formatEntryLine(l, e))
			if e.Notes != "" {
				c.app.println("    " + s.Dim.Render(e.Notes))
			}
		}
	}
}

// formatEntryLine renders "08:00 - 16:30 (Projekt)  Pause: 30 Min. | Arbeitszeit: 8h 0min  [id]"
func formatEntryLine(l i18n.Labels, e domain.TimeEntry) string {
	var b strings.Builder
	b.WriteString(e.StartTime.Format(clockLayout))
	b.WriteString(" - ")
	if e.EndTime != nil {
		b.WriteString(e.EndTime.Format(clockLayout))
	} else {
		b.WriteString(l.Running)
	}
	if e.Project != "" {
		fmt.Fprintf(&b, " (%s)", e.Project)
	}
	b.WriteString("  ")
	if e.BreakDuration > 0 {
		fmt.Fprintf(&b, "%s %d %s | ", l.BreakLabel, e.BreakDuration, l.MinutesShort)
	}
	b.WriteString(l.WorkedLabel + " ")
	if e.IsOpen() {
		b.WriteString("-")
	} else {
		b.WriteString(l.Duration(e.WorkedHours()))
	}
	fmt.Fprintf(&b, "  [%s]", shortID(e.ID))
	return b.String()
}

// shortID returns the first block of a uuid, enough to address an entry
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func parseDayFlag(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today", "heute":
		return domain.StartOfDay(now), nil
	case "yesterday", "gestern":
		return domain.StartOfDay(now.AddDate(0, 0, -1)), nil
	}
	for _, layout := range []string{dayLayout, "02.01.2006"} {
		if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError("day", s, "expected YYYY-MM-DD, DD.MM.YYYY or today")
}

func filterDays(days []services.DaySummary, day time.Time) []services.DaySummary {
	for _, d := range days {
		if domain.SameDay(d.Date, day) {
			return []services.DaySummary{d}
		}
	}
	return nil
}
