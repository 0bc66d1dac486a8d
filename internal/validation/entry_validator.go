package validation

import (
	"strconv"
	"strings"
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
)

// Accepted text layouts for manual entry input.
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutGerman = "02.01.2006"
	ClockLayout      = "15:04"
)

// EntryDraft is a manually entered or edited entry before it is accepted.
// Only the calendar day of Date and the hour and minute of StartTime and
// EndTime are used.
type EntryDraft struct {
	Date          *time.Time
	StartTime     *time.Time
	EndTime       *time.Time
	BreakDuration int
	Project       string
	Notes         string
}

// DraftInput holds the raw text of an entry as typed by the user
type DraftInput struct {
	Date    string
	Start   string
	End     string
	Break   string
	Project string
	Notes   string
}

// NewDraftInput renders an existing entry as editable text
func NewDraftInput(entry domain.TimeEntry) DraftInput {
	input := DraftInput{
		Date:    entry.Date.Format(DateLayoutISO),
		Start:   entry.StartTime.Format(ClockLayout),
		Break:   strconv.Itoa(entry.BreakDuration),
		Project: entry.Project,
		Notes:   entry.Notes,
	}
	if entry.EndTime != nil {
		input.End = entry.EndTime.Format(ClockLayout)
	}
	return input
}

// EntryValidator validates and assembles manually edited entries
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{validator: NewValidator()}
}

// NewEntryValidatorWithConfig creates a new entry validator with configuration
func NewEntryValidatorWithConfig(cfg *config.Config) *EntryValidator {
	return &EntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ParseDraft converts raw input into a draft. Blank date or start yield a
// nil field, which ValidateDraft reports as required.
func (ev *EntryValidator) ParseDraft(input DraftInput) (EntryDraft, error) {
	validationError := NewValidationError()
	var draft EntryDraft

	if s := strings.TrimSpace(input.Date); s != "" {
		if d, ok := parseDate(s); ok {
			draft.Date = &d
		} else {
			validationError.AddInvalidFormatError("date", s, "YYYY-MM-DD or DD.MM.YYYY")
		}
	}

	if s := strings.TrimSpace(input.Start); s != "" {
		if c, err := time.ParseInLocation(ClockLayout, s, time.Local); err == nil {
			draft.StartTime = &c
		} else {
			validationError.AddInvalidFormatError("startTime", s, "HH:MM")
		}
	}

	if s := strings.TrimSpace(input.End); s != "" {
		if c, err := time.ParseInLocation(ClockLayout, s, time.Local); err == nil {
			draft.EndTime = &c
		} else {
			validationError.AddInvalidFormatError("endTime", s, "HH:MM")
		}
	}

	if s := strings.TrimSpace(input.Break); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			draft.BreakDuration = n
		} else {
			validationError.AddInvalidFormatError("breakDuration", s, "whole minutes")
		}
	}

	draft.Project = input.Project
	draft.Notes = input.Notes

	if validationError.HasErrors() {
		return draft, validationError
	}
	return draft, nil
}

// ValidateDraft checks a draft before it is turned into an entry
func (ev *EntryValidator) ValidateDraft(draft EntryDraft) error {
	validationError := NewValidationError()

	if draft.Date == nil {
		validationError.AddRequiredError("date")
	} else if !ev.validator.IsReasonableDate(*draft.Date) {
		validationError.AddInvalidValueError("date", *draft.Date, "must be within reasonable date range")
	}

	if draft.StartTime == nil {
		validationError.AddRequiredError("startTime")
	}

	if !ev.validator.IsNonNegative(draft.BreakDuration) {
		validationError.AddInvalidValueError("breakDuration", draft.BreakDuration, "must not be negative")
	}

	maxLen := ev.validator.TextMaxLength()
	if !ev.validator.IsValidTextLength(draft.Project) {
		validationError.AddInvalidLengthError("project", draft.Project, 0, maxLen)
	}
	if !ev.validator.IsValidTextLength(draft.Notes) {
		validationError.AddInvalidLengthError("notes", draft.Notes, 0, maxLen)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// BuildEntry validates draft and combines its date with the start and end
// clock times. An end earlier than the start is taken to be on the next day.
// An empty existingID assigns a new identifier.
func (ev *EntryValidator) BuildEntry(draft EntryDraft, existingID string) (domain.TimeEntry, error) {
	if err := ev.ValidateDraft(draft); err != nil {
		return domain.TimeEntry{}, err
	}

	date := domain.StartOfDay(*draft.Date)
	start := domain.AtClock(date, *draft.StartTime)

	var end *time.Time
	if draft.EndTime != nil {
		e := domain.RollOverEnd(start, domain.AtClock(date, *draft.EndTime))
		end = &e
	}

	id := existingID
	if id == "" {
		id = domain.NewID()
	}

	return domain.TimeEntry{
		ID:            id,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		BreakDuration: draft.BreakDuration,
		Project:       ev.validator.TrimAndValidateString(draft.Project),
		Notes:         ev.validator.TrimAndValidateString(draft.Notes),
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{DateLayoutISO, DateLayoutGerman} {
		if d, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ValidateField checks a single raw input field. It is used for inline
// validation in interactive forms. Unknown fields are accepted.
func (ev *EntryValidator) ValidateField(field, value string) error {
	var input DraftInput
	switch field {
	case "date":
		input.Date = value
	case "startTime":
		input.Start = value
	case "endTime":
		input.End = value
	case "breakDuration":
		input.Break = value
	case "project":
		input.Project = value
	case "notes":
		input.Notes = value
	default:
		return nil
	}

	draft, err := ev.ParseDraft(input)
	if err != nil {
		return err
	}

	validationError := NewValidationError()
	switch field {
	case "date":
		if draft.Date == nil {
			validationError.AddRequiredError("date")
		} else if !ev.validator.IsReasonableDate(*draft.Date) {
			validationError.AddInvalidValueError("date", *draft.Date, "must be within reasonable date range")
		}
	case "startTime":
		if draft.StartTime == nil {
			validationError.AddRequiredError("startTime")
		}
	case "breakDuration":
		if !ev.validator.IsNonNegative(draft.BreakDuration) {
			validationError.AddInvalidValueError("breakDuration", draft.BreakDuration, "must not be negative")
		}
	case "project", "notes":
		if !ev.validator.IsValidTextLength(value) {
			validationError.AddInvalidLengthError(field, value, 0, ev.validator.TextMaxLength())
		}
	}
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
