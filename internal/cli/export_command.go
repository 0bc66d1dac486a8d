package cli

import (
	"context"
	"fmt"
	"strings"

	"worktime/internal/api"
	"worktime/internal/errors"
	"worktime/internal/export"
)

// ExportCommand writes all entries as a CSV or PDF file
type ExportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command. An empty store prints a hint and succeeds.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	fs := exportFlags()
	rest, err := parseFlags(fs, args)
	if err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}
	if len(rest) != 1 {
		return errors.NewInvalidInputError("command", "export", "usage: wt export csv|pdf [--dir DIR]")
	}

	format, err := export.ParseFormat(rest[0])
	if err != nil {
		return c.errorHandler.Handle("export", err)
	}
	dir, _ := fs.GetString("dir")

	result, err := c.businessAPI.Export(ctx, format, dir, timeNow())
	if err != nil {
		return c.errorHandler.Handle("export", err)
	}

	l := c.app.labels()
	if !result.Written {
		c.app.println(c.app.styles.Dim.Render(l.NothingToExport))
		return nil
	}
	c.app.println(fmt.Sprintf("%s %s (%d)", l.Exported, result.Path, result.Count))
	return nil
}
