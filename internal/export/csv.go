package export

import (
	"bufio"
	"io"
	"strings"

	"worktime/internal/domain"
	"worktime/internal/i18n"
)

// WriteCSV writes a header row and one row per entry. Project and notes are
// always quoted, the other columns never are.
func WriteCSV(w io.Writer, entries []domain.TimeEntry, labels i18n.Labels) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(labels.CSVHeader, ",") + "\n"); err != nil {
		return err
	}
	for _, e := range entries {
		r := FormatRow(e)
		fields := []string{
			r.Date, r.Start, r.End, r.Break,
			quote(r.Project), quote(r.Notes),
			r.WorkedHours,
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
