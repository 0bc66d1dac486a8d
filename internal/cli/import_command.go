package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"worktime/internal/api"
	"worktime/internal/errors"
)

// ImportCommand replaces the store with a JSON state dump
type ImportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute imports the file named by args[0]; "-" reads stdin
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: wt import <file|->")
	}

	var r io.Reader = c.app.in
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.NewInvalidInputError("file", args[0], err.Error())
		}
		defer f.Close()
		r = f
	}

	result, err := c.businessAPI.ImportState(ctx, r)
	if err != nil {
		return c.errorHandler.Handle("import", err)
	}

	l := c.app.labels()
	c.app.println(fmt.Sprintf("%s %d", l.Imported, result.Entries))
	if result.Working {
		for _, line := range statusLines(l, c.app.styles, c.businessAPI.Status(timeNow())) {
			c.app.println(line)
		}
	}
	return nil
}
