package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/errors"
	"worktime/internal/i18n"
)

const (
	timeLayout  = "15:04:05"
	clockLayout = "15:04"
	dayLayout   = "2006-01-02"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	registry    *CommandRegistry
	out         io.Writer
	in          io.Reader
	interactive bool
	styles      Styles
}

// NewAppWithConfig creates a new CLI application writing to stdout
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
		in:          os.Stdin,
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		styles:      NewStyles(isTerminal(os.Stdout)),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithIO replaces the input and output streams; nil keeps the current one.
// Interactive features and colours are disabled.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	if in != nil {
		a.in = in
	}
	if out != nil {
		a.out = out
	}
	a.interactive = false
	a.styles = NewStyles(false)
	return a
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) labels() i18n.Labels {
	return a.businessAPI.Labels()
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatClock renders seconds as HH:MM:SS
func formatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
