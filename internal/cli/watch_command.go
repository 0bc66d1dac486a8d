package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/errors"
	"worktime/internal/repository/sqlite"
)

// WatchCommand runs the live dashboard
type WatchCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the dashboard until the user quits. Writes by other
// invocations are picked up through a file watcher on the database.
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "watch", "usage: wt watch")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if dbPath := config.NewRepositoryFactory(c.app.config).DatabasePath(); dbPath != sqlite.MemoryPath {
		watcher, err := NewStoreWatcher(dbPath, nil)
		if err == nil {
			defer watcher.Close()
			go watcher.Run(ctx)
			changes = watcher.Changes()
		}
	}

	model := newDashboardModel(ctx, c.businessAPI, c.app.styles, changes)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(c.app.in), tea.WithOutput(c.app.out))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
