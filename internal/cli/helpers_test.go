package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

type cliFixture struct {
	app *App
	api api.BusinessAPI
	cfg *config.Config
	in  *bytes.Buffer
	out *bytes.Buffer
	now time.Time
}

// setupTestApp wires an App to a business API over an in-memory store.
// The clock starts on Monday 2024-03-04 08:00 local time.
func setupTestApp(t *testing.T) *cliFixture {
	t.Helper()
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	f := &cliFixture{
		cfg: config.NewConfig(),
		in:  &bytes.Buffer{},
		out: &bytes.Buffer{},
		now: time.Date(2024, 3, 4, 8, 0, 0, 0, time.Local),
	}
	f.cfg.Export.Dir = t.TempDir()
	clock := func() time.Time { return f.now }

	f.api, err = api.NewBusinessAPI(context.Background(), repo, api.Options{Config: f.cfg, Clock: clock})
	require.NoError(t, err)

	// Replace timeNow for the duration of the test
	original := timeNow
	timeNow = clock
	t.Cleanup(func() { timeNow = original })

	f.app = NewAppWithConfig(f.api, f.cfg).WithIO(f.in, f.out)
	return f
}

func (f *cliFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// run executes a registered command and returns its output
func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	f.out.Reset()
	err := f.app.Run(context.Background(), args)
	return f.out.String(), err
}

// mustRun executes a command that is expected to succeed
func (f *cliFixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := f.run(t, args...)
	require.NoError(t, err)
	return out
}

// addEntry stores an entry through the add command and returns its short id
func (f *cliFixture) addEntry(t *testing.T, date, start, end, breakMinutes, project string) string {
	t.Helper()
	f.mustRun(t, "add", "--date="+date, "--start="+start, "--end="+end, "--break="+breakMinutes, "--project="+project)
	entries, err := f.api.ListEntries(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		if e.Project == project {
			return shortID(e.ID)
		}
	}
	t.Fatalf("entry for project %q not stored", project)
	return ""
}
