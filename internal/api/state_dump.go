package api

import (
	"bytes"
	"encoding/json"

	"worktime/internal/errors"
	"worktime/internal/repository/sqlite"
	"worktime/internal/repository/sqlite/migrations"
)

// stateDump mirrors a browser local storage dump. Each value may be the JSON
// itself or a string holding JSON, which is how local storage keeps it.
type stateDump struct {
	IsWorking      json.RawMessage `json:"isWorking"`
	CurrentSession json.RawMessage `json:"currentSession"`
	TimeEntries    json.RawMessage `json:"timeEntries"`
}

func decodeStateDump(data []byte) (*sqlite.StateDocument, error) {
	var dump stateDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, errors.NewValidationError("import file is not a JSON object", err)
	}

	state := &sqlite.StateDocument{}

	if raw := unquote(dump.IsWorking); len(raw) > 0 {
		if err := json.Unmarshal(raw, &state.IsWorking); err != nil {
			return nil, errors.NewParseError(sqlite.KeyIsWorking, err)
		}
	}

	if raw := unquote(dump.CurrentSession); len(raw) > 0 {
		normalized, err := migrations.NormalizeSessionJSON(raw)
		if err != nil {
			return nil, errors.NewParseError(sqlite.KeyCurrentSession, err)
		}
		if err := json.Unmarshal(normalized, &state.CurrentSession); err != nil {
			return nil, errors.NewParseError(sqlite.KeyCurrentSession, err)
		}
	}

	if raw := unquote(dump.TimeEntries); len(raw) > 0 {
		normalized, err := migrations.NormalizeEntriesJSON(raw)
		if err != nil {
			return nil, errors.NewParseError(sqlite.KeyTimeEntries, err)
		}
		if err := json.Unmarshal(normalized, &state.TimeEntries); err != nil {
			return nil, errors.NewParseError(sqlite.KeyTimeEntries, err)
		}
	}

	return state, nil
}

// unquote returns the inner JSON of a string value, and raw otherwise.
// A JSON null yields nil.
func unquote(raw json.RawMessage) []byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '"' {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return raw
	}
	if inner == "" {
		return nil
	}
	return []byte(inner)
}
