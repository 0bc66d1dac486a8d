package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"worktime/internal/i18n"
	"worktime/internal/validation"
)

// entryForm builds the add/edit form over input. Every field is validated as it is left.
func entryForm(input *validation.DraftInput, v *validation.EntryValidator, l i18n.Labels) *huh.Form {
	check := func(field string) func(string) error {
		return func(s string) error {
			err := v.ValidateField(field, s)
			if ve, ok := validation.AsValidationError(err); ok && len(ve.Errors) > 0 {
				return &ve.Errors[0]
			}
			return err
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(l.PDFHeader[0]).
				Placeholder("2024-03-04").
				Value(&input.Date).
				Validate(check("date")),
			huh.NewInput().
				Title(l.PDFHeader[1]).
				Placeholder("08:00").
				Value(&input.Start).
				Validate(check("startTime")),
			huh.NewInput().
				Title(l.PDFHeader[2]).
				Placeholder("16:30").
				Value(&input.End).
				Validate(check("endTime")),
			huh.NewInput().
				Title(l.PDFHeader[3]).
				Placeholder("30").
				Value(&input.Break).
				Validate(check("breakDuration")),
			huh.NewInput().
				Title(l.PDFHeader[4]).
				Value(&input.Project).
				Validate(check("project")),
			huh.NewText().
				Title(l.PDFHeader[5]).
				Value(&input.Notes).
				Validate(check("notes")),
		),
	).WithTheme(worktimeHuhTheme()).WithShowHelp(false)
}

func worktimeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(colorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(colorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
