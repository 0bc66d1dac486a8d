package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute deletes the entry with the given id or id prefix
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	fs := deleteFlags()
	rest, err := parseFlags(fs, args)
	if err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}
	if len(rest) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: wt delete <id>")
	}

	id, err := resolveEntryID(ctx, c.businessAPI, rest[0])
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	entry, err := c.businessAPI.GetEntry(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	l := c.app.labels()
	if yes, _ := fs.GetBool("yes"); !yes {
		c.app.println(fmt.Sprintf("%s  %s", entry.Date.Format("02.01.2006"), formatEntryLine(l, *entry)))
		c.app.printf("Delete this entry? [y/N] ")
		answer, _ := bufio.NewReader(c.app.in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "j", "ja":
		default:
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	if err := c.businessAPI.DeleteEntry(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	c.app.println(fmt.Sprintf("%s %s", l.Deleted, shortID(id)))
	return nil
}

// resolveEntryID expands a unique id prefix to the full entry id
func resolveEntryID(ctx context.Context, businessAPI api.BusinessAPI, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewInvalidInputError("id", ref, "must not be empty")
	}

	entries, err := businessAPI.ListEntries(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, e := range entries {
		if e.ID == ref {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("time entry", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", ref, fmt.Sprintf("matches %d entries, use more characters", len(matches)))
	}
}
