package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"worktime/internal/api"
	"worktime/internal/config"
)

// APIFactory builds the business API for a resolved configuration. The
// returned close function releases the underlying storage.
type APIFactory func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error)

type timeoutMode int

const (
	timeoutDefault timeoutMode = iota
	timeoutInteractive
	timeoutNone
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory APIFactory

	in  io.Reader
	out io.Writer

	app      *App
	closeAPI func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "wt",
		Short: "Track daily working hours from the terminal",
		Long: `worktime (wt) records working hours: start a work day, take breaks,
stop, and export the collected entries as CSV or PDF.

EXAMPLES:
  wt start                                 # Start a work session at the current time
  wt break                                 # Start a break, run again to end it
  wt stop                                  # Stop and save the session as an entry
  wt status                                # Show the running session
  wt list --day today                      # List today's entries
  wt add --date 2024-03-04 --start 08:00 --end 16:30 --break 30
  wt edit 3f2a                             # Edit an entry by id prefix
  wt export pdf --dir ~/Documents          # Write Arbeitszeitnachweis_<date>.pdf
  wt import backup.json                    # Replace the stored state from a dump
  wt watch                                 # Live clock with start/break/stop keys

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file:
    WT_CONFIG                              Path to a YAML config file (default: ~/.worktime/config.yaml)

  Database Configuration:
    WT_DB_DIR                              Database directory (default: ~/.worktime)
    WT_DB_FILENAME                         Database filename (default: worktime.db)
    WT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    WT_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Locale and Export Configuration:
    WT_LANG                                Label language, de or en (default: de)
    WT_EXPORT_DIR                          Export directory (default: .)
    WT_EXPORT_PREFIX                       Export file name prefix (default: per language)

  Session Configuration:
    WT_SESSION_FLUSH_OPEN_BREAK            Count a running break when stopping (default: false)

  Application Configuration:
    WT_APP_TIMEOUT                         Application timeout (default: 60s)
    WT_APP_VERBOSE                         Enable verbose output (default: false)
    WT_ENV                                 development, testing or production (default: production)

GETTING HELP:
  wt [command] --help                      # Get help for any specific command
  wt completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.applyFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// WithIO replaces stdin and stdout for every command handler
func (r *RootCommand) WithIO(in io.Reader, out io.Writer) *RootCommand {
	r.in = in
	r.out = out
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(out)
	return r
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the storage afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.closeAPI != nil {
		if closeErr := r.closeAPI(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.closeAPI = nil
	}
	return err
}

// Config returns the configuration, including applied flag overrides
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides WT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WT_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides WT_DB_WRITE_TIMEOUT)")

	// Locale and export configuration
	flags.String("lang", "", "Label language, de or en (overrides WT_LANG)")
	flags.String("export-dir", "", "Export directory (overrides WT_EXPORT_DIR)")
	flags.String("export-prefix", "", "Export file name prefix (overrides WT_EXPORT_PREFIX)")

	// Session configuration
	flags.Bool("flush-open-break", false, "Count a running break when stopping (overrides WT_SESSION_FLUSH_OPEN_BREAK)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides WT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides WT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		Long:  "Start a work session at the current time. Starting while a session runs replaces it; the earlier session is not saved.",
		Args:  cobra.NoArgs,
		RunE:  r.runE("start", timeoutDefault),
	}

	breakCmd := &cobra.Command{
		Use:   "break",
		Short: "Start or end a break",
		Long:  "Toggle a break in the running work session. The first call starts a break, the next one ends it.",
		Args:  cobra.NoArgs,
		RunE:  r.runE("break", timeoutDefault),
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the work session and save it",
		Long: `Stop the running work session and save it as a time entry.

A break that is still running is discarded unless --flush-open-break is set.`,
		Args: cobra.NoArgs,
		RunE: r.runE("stop", timeoutDefault),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session",
		Args:  cobra.NoArgs,
		RunE:  r.runE("status", timeoutDefault),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries grouped by day",
		Long: `List time entries grouped by calendar day, newest day first, with the
hours worked per day and in total.

Examples:
  wt list                    # List all entries
  wt list --day today        # Only today
  wt list --day 04.03.2024   # Only one day`,
		Args: cobra.NoArgs,
		RunE: r.runE("list", timeoutDefault),
	}
	listCmd.Flags().AddFlagSet(listFlags())

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Long: `Add a time entry. Without flags an interactive form is shown.

Examples:
  wt add
  wt add --date 2024-03-04 --start 08:00 --end 16:30 --break 30 --project Alpha`,
		Args: cobra.NoArgs,
		RunE: r.runE("add", timeoutInteractive),
	}
	addCmd.Flags().AddFlagSet(entryFlags("add"))

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry",
		Long: `Edit a time entry by id or unique id prefix. Without flags an interactive
form prefilled with the entry is shown; flags change only the named fields.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runE("edit", timeoutInteractive),
	}
	editCmd.Flags().AddFlagSet(entryFlags("edit"))

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Long:  "Delete a time entry by id or unique id prefix. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("delete", timeoutInteractive),
	}
	deleteCmd.Flags().AddFlagSet(deleteFlags())

	exportCmd := &cobra.Command{
		Use:       "export csv|pdf",
		Short:     "Export all entries",
		Long:      "Export all entries as CSV (Arbeitszeiten_<date>.csv) or PDF (Arbeitszeitnachweis_<date>.pdf).",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "pdf"},
		RunE:      r.runE("export", timeoutDefault),
	}
	exportCmd.Flags().AddFlagSet(exportFlags())

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the stored state from a JSON dump",
		Long: `Replace all entries and the running session with the contents of a JSON
state dump. Use "-" to read the dump from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runE("import", timeoutDefault),
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live clock with session controls",
		Long:  "Show the current time and session state, refreshed every second. Keys: s start/stop, b break, q quit.",
		Args:  cobra.NoArgs,
		RunE:  r.runE("watch", timeoutNone),
	}

	r.cmd.AddCommand(
		startCmd,
		breakCmd,
		stopCmd,
		statusCmd,
		listCmd,
		addCmd,
		editCmd,
		deleteCmd,
		exportCmd,
		importCmd,
		watchCmd,
	)
}

// runE forwards a cobra invocation to the registered handler
func (r *RootCommand) runE(name string, mode timeoutMode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := r.commandContext(cmd.Context(), mode)
		defer cancel()

		app, err := r.ensureApp(ctx)
		if err != nil {
			return err
		}

		local := cmd.LocalNonPersistentFlags()
		forwarded := forwardedFlags(local)
		if len(args) > 0 && hasHandlerFlags(local) {
			forwarded = append(forwarded, "--")
		}
		forwarded = append(forwarded, args...)

		return app.registry.Execute(ctx, name, forwarded)
	}
}

// hasHandlerFlags reports whether fs carries flags besides --help
func hasHandlerFlags(fs *pflag.FlagSet) bool {
	found := false
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name != "help" {
			found = true
		}
	})
	return found
}

func (r *RootCommand) commandContext(parent context.Context, mode timeoutMode) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	switch mode {
	case timeoutNone:
		return context.WithCancel(parent)
	case timeoutInteractive:
		// Commands that can prompt for input get a longer timeout
		return context.WithTimeout(parent, r.getAppTimeout()*2)
	default:
		return context.WithTimeout(parent, r.getAppTimeout())
	}
}

// ensureApp builds the API on first use, after flags have been applied
func (r *RootCommand) ensureApp(ctx context.Context) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	businessAPI, closeFn, err := r.factory(ctx, r.config)
	if err != nil {
		return nil, err
	}
	r.closeAPI = closeFn

	r.app = NewAppWithConfig(businessAPI, r.config)
	if r.in != nil || r.out != nil {
		r.app.WithIO(r.in, r.out)
	}
	return r.app, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// applyFlags updates the configuration with the flags set on the command line
func (r *RootCommand) applyFlags() error {
	r.config.ApplyOverrides(overridesFromFlags(r.cmd.PersistentFlags()))
	return r.config.Validate()
}

func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	if flags.Changed("lang") {
		v, _ := flags.GetString("lang")
		overrides.Language = &v
	}
	if flags.Changed("export-dir") {
		v, _ := flags.GetString("export-dir")
		overrides.ExportDir = &v
	}
	if flags.Changed("export-prefix") {
		v, _ := flags.GetString("export-prefix")
		overrides.ExportPrefix = &v
	}

	if flags.Changed("flush-open-break") {
		v, _ := flags.GetBool("flush-open-break")
		overrides.FlushOpenBreak = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
