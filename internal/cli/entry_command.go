package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/pflag"

	"worktime/internal/api"
	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/validation"
)

// EntryCommand adds or edits a time entry from flags or an interactive form
type EntryCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	validator    *validation.EntryValidator
	errorHandler *ErrorHandler
	edit         bool

	// runForm shows the form; replaced in tests
	runForm func(ctx context.Context, input *validation.DraftInput) error
}

// NewAddCommand creates the add command handler
func NewAddCommand(app *App) *EntryCommand {
	return newEntryCommand(app, false)
}

// NewEditCommand creates the edit command handler
func NewEditCommand(app *App) *EntryCommand {
	return newEntryCommand(app, true)
}

func newEntryCommand(app *App, edit bool) *EntryCommand {
	c := &EntryCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		validator:    validation.NewEntryValidatorWithConfig(app.config),
		errorHandler: NewErrorHandler(),
		edit:         edit,
	}
	c.runForm = c.showForm
	return c
}

func (c *EntryCommand) name() string {
	if c.edit {
		return "edit"
	}
	return "add"
}

func (c *EntryCommand) usage() string {
	if c.edit {
		return "usage: wt edit <id> [--date D] [--start HH:MM] [--end HH:MM] [--break MIN] [--project P] [--notes N]"
	}
	return "usage: wt add [--date D] --start HH:MM [--end HH:MM] [--break MIN] [--project P] [--notes N]"
}

// Execute runs the add or edit command
func (c *EntryCommand) Execute(ctx context.Context, args []string) error {
	fs := entryFlags(c.name())
	rest, err := parseFlags(fs, args)
	if err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}

	var (
		id    string
		input validation.DraftInput
	)
	if c.edit {
		if len(rest) != 1 {
			return errors.NewInvalidInputError("command", "edit", c.usage())
		}
		id, err = resolveEntryID(ctx, c.businessAPI, rest[0])
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
		entry, err := c.businessAPI.GetEntry(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
		input = validation.NewDraftInput(*entry)
	} else {
		if len(rest) != 0 {
			return errors.NewInvalidInputError("command", "add", c.usage())
		}
		now := timeNow()
		input = validation.DraftInput{Date: now.Format(validation.DateLayoutISO)}
		if fs.NFlag() == 0 {
			input.Start = now.Format(validation.ClockLayout)
		}
	}

	if fs.NFlag() > 0 {
		applyEntryFlags(fs, &input)
		return c.errorHandler.Handle("save entry", c.save(ctx, input, id))
	}

	if !c.app.interactive {
		return errors.NewInvalidInputError("command", c.name(), c.usage())
	}
	return c.interactive(ctx, input, id)
}

// interactive shows the form until the entry is saved or the user aborts
func (c *EntryCommand) interactive(ctx context.Context, input validation.DraftInput, id string) error {
	for {
		if err := c.runForm(ctx, &input); err != nil {
			if stderrors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		err := c.save(ctx, input, id)
		if err == nil {
			return nil
		}
		if !c.errorHandler.IsValidationError(err) {
			return c.errorHandler.Handle("save entry", err)
		}
		c.app.println(c.app.styles.Error.Render(c.errorHandler.Handle("save entry", err).Error()))
	}
}

func (c *EntryCommand) showForm(ctx context.Context, input *validation.DraftInput) error {
	return entryForm(input, c.validator, c.app.labels()).RunWithContext(ctx)
}

func (c *EntryCommand) save(ctx context.Context, input validation.DraftInput, id string) error {
	entry, err := c.businessAPI.SaveEntry(ctx, input, id)
	if err != nil {
		return err
	}
	l := c.app.labels()
	c.app.println(fmt.Sprintf("%s %s", l.Saved, shortID(entry.ID)))
	c.app.println(fmt.Sprintf("%s  %s", l.LongDate(entry.Date), formatEntryLine(l, *entry)))
	warnMultiDay(c.app, *entry)
	return nil
}

// applyEntryFlags copies the changed flags into input
func applyEntryFlags(fs *pflag.FlagSet, input *validation.DraftInput) {
	fields := map[string]*string{
		"date":    &input.Date,
		"start":   &input.Start,
		"end":     &input.End,
		"break":   &input.Break,
		"project": &input.Project,
		"notes":   &input.Notes,
	}
	fs.Visit(func(f *pflag.Flag) {
		if dst, ok := fields[f.Name]; ok {
			*dst = f.Value.String()
		}
	})
}

// warnMultiDay notes entries that end on a later day than they start
func warnMultiDay(app *App, e domain.TimeEntry) {
	if e.EndTime != nil && !domain.SameDay(e.StartTime, *e.EndTime) {
		app.println(app.styles.Dim.Render("(+1 " + e.EndTime.Format(dayLayout) + ")"))
	}
}
