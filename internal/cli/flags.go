package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// Flag sets shared by the cobra commands, for help and completion, and by the
// handlers, which parse the forwarded arguments themselves.

func listFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.String("day", "", "Only show entries of this day (YYYY-MM-DD, DD.MM.YYYY or \"today\")")
	return fs
}

func entryFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("date", "", "Entry date (YYYY-MM-DD or DD.MM.YYYY)")
	fs.String("start", "", "Start time (HH:MM)")
	fs.String("end", "", "End time (HH:MM), empty for an open entry")
	fs.String("break", "", "Break in whole minutes")
	fs.String("project", "", "Project name")
	fs.String("notes", "", "Free text notes")
	return fs
}

func exportFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	fs.String("dir", "", "Target directory (overrides WT_EXPORT_DIR)")
	return fs
}

func deleteFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	fs.BoolP("yes", "y", false, "Delete without asking for confirmation")
	return fs
}

// parseFlags parses args into fs and returns the positional arguments
func parseFlags(fs *pflag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// forwardedFlags renders the changed flags of fs as "--name=value" arguments
func forwardedFlags(fs *pflag.FlagSet) []string {
	var args []string
	fs.Visit(func(f *pflag.Flag) {
		args = append(args, "--"+f.Name+"="+f.Value.String())
	})
	return args
}
