package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"worktime/internal/config"
)

const defaultTextMaxLength = 500

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
	now    func() time.Time
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
		now:    time.Now,
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
		now:    time.Now,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the rune count of s is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTextLength checks free text against the configured maximum
func (v *Validator) IsValidTextLength(s string) bool {
	return v.IsValidStringLength(s, 0, v.TextMaxLength())
}

// IsNonNegative checks that a minute count is zero or more
func (v *Validator) IsNonNegative(n int) bool {
	return n >= 0
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := v.now()
	// Allow dates from 10 years ago to 1 year in the future
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TextMaxLength returns the configured maximum length of project and notes
func (v *Validator) TextMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TextMaxLength
	}
	return defaultTextMaxLength
}
