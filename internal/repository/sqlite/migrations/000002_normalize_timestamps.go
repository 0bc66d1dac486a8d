package migrations

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"worktime/internal/logging"
)

func init() {
	RegisterGoMigration(2, Up_000002_normalize_timestamps, Down_000002_normalize_timestamps)
}

var (
	entryTimeFields   = []string{"date", "startTime", "endTime"}
	sessionTimeFields = []string{"startTime", "breakStart"}
)

// Up_000002_normalize_timestamps rewrites every timestamp stored inside the
// timeEntries and currentSession values to RFC3339Nano in UTC.
// Handled input forms include:
// - JavaScript toISOString output (2025-06-23T09:47:24.890Z)
// - Go time.String output with monotonic suffix and zone name
// - Space separated date and time, with or without offset
// - Bare dates (2025-06-23), read as local midnight
// Values that are not valid JSON are left untouched.
func Up_000002_normalize_timestamps(tx *sql.Tx) error {
	if err := normalizeKey(tx, "timeEntries", normalizeEntries); err != nil {
		return err
	}
	return normalizeKey(tx, "currentSession", normalizeSession)
}

// Down_000002_normalize_timestamps is a no-op. The canonical form is accepted
// by every reader, so there is nothing to revert.
func Down_000002_normalize_timestamps(tx *sql.Tx) error {
	return nil
}

func normalizeKey(tx *sql.Tx, key string, rewrite func([]byte) ([]byte, int, error)) error {
	var value string
	err := tx.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	updated, changed, err := rewrite([]byte(value))
	if err != nil {
		logging.Debugf("skipping %s normalization: %v\n", key, err)
		return nil
	}
	if changed == 0 {
		return nil
	}

	_, err = tx.Exec("UPDATE kv_store SET value = ?, updated_at = ? WHERE key = ?",
		string(updated), time.Now().UTC().Format(time.RFC3339Nano), key)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	logging.Debugf("normalized %d timestamps in %s\n", changed, key)
	return nil
}

func normalizeEntries(raw []byte) ([]byte, int, error) {
	var entries []map[string]any
	if err := decodeJSON(raw, &entries); err != nil {
		return nil, 0, err
	}
	changed := 0
	for _, entry := range entries {
		changed += normalizeFields(entry, entryTimeFields)
	}
	out, err := json.Marshal(entries)
	return out, changed, err
}

func normalizeSession(raw []byte) ([]byte, int, error) {
	var session map[string]any
	if err := decodeJSON(raw, &session); err != nil {
		return nil, 0, err
	}
	changed := normalizeFields(session, sessionTimeFields)
	out, err := json.Marshal(session)
	return out, changed, err
}

// decodeJSON keeps numbers as json.Number so integer fields survive unchanged.
func decodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func normalizeFields(obj map[string]any, fields []string) int {
	changed := 0
	for _, field := range fields {
		s, ok := obj[field].(string)
		if !ok || s == "" {
			continue
		}
		canonical, err := NormalizeTimestamp(s)
		if err != nil {
			logging.Debugf("could not parse %s=%q: %v\n", field, s, err)
			continue
		}
		if canonical != s {
			obj[field] = canonical
			changed++
		}
	}
	return changed
}

// NormalizeTimestamp parses the known timestamp spellings and returns the
// value as RFC3339Nano in UTC. Forms without an offset are read as local time.
func NormalizeTimestamp(s string) (string, error) {
	s = stripMonotonicSuffix(strings.TrimSpace(s))

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(time.RFC3339Nano), nil
	}

	zoned := []string{
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05Z07:00",
	}
	for _, layout := range zoned {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339Nano), nil
		}
	}

	local := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range local {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC().Format(time.RFC3339Nano), nil
		}
	}

	return "", fmt.Errorf("could not parse time format: %s", s)
}

// stripMonotonicSuffix removes the monotonic clock reading from Go time strings.
func stripMonotonicSuffix(timeStr string) string {
	if idx := strings.Index(timeStr, " m="); idx != -1 {
		return timeStr[:idx]
	}
	return timeStr
}

// NormalizeEntriesJSON rewrites the timestamps of a timeEntries value
func NormalizeEntriesJSON(raw []byte) ([]byte, error) {
	out, _, err := normalizeEntries(raw)
	return out, err
}

// NormalizeSessionJSON rewrites the timestamps of a currentSession value
func NormalizeSessionJSON(raw []byte) ([]byte, error) {
	out, _, err := normalizeSession(raw)
	return out, err
}
