package sqlite

import "time"

// Keys of the persisted application state.
const (
	KeyIsWorking      = "isWorking"
	KeyCurrentSession = "currentSession"
	KeyTimeEntries    = "timeEntries"
)

// Record is a single row of the kv_store table
type Record struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// EntryDocument is the stored JSON shape of one time entry.
// Timestamps are RFC 3339 strings.
type EntryDocument struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       *string `json:"endTime"`
	BreakDuration int     `json:"breakDuration"`
	Project       string  `json:"project"`
	Notes         string  `json:"notes"`
}

// SessionDocument is the stored JSON shape of the current session
type SessionDocument struct {
	StartTime      *string `json:"startTime"`
	BreakStart     *string `json:"breakStart"`
	TotalBreakTime int     `json:"totalBreakTime"`
}

// StateDocument is a full dump of the three keys, as exported by the
// browser version of the tracker.
type StateDocument struct {
	IsWorking      bool            `json:"isWorking"`
	CurrentSession SessionDocument `json:"currentSession"`
	TimeEntries    []EntryDocument `json:"timeEntries"`
}
