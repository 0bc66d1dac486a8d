package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"worktime/internal/errors"
	"worktime/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	assert.NoError(t, eh.Handle("save entry", nil))

	ve := validation.NewValidationError()
	ve.AddRequiredError("startTime")
	ve.AddRequiredError("date")
	err := eh.Handle("save entry", ve)
	assert.Equal(t, "failed to save entry:\n  - "+ve.Errors[1].Message+"\n  - "+ve.Errors[0].Message, err.Error())

	err = eh.Handle("delete entry", errors.NewNotFoundError("time entry", "abc"))
	assert.Equal(t, "failed to delete entry: time entry not found: abc", err.Error())

	plain := stderrors.New("boom")
	err = eh.Handle("export", plain)
	assert.ErrorIs(t, err, plain)
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()
	assert.NoError(t, eh.HandleSimple(nil))
	assert.Equal(t, "no work session is active", eh.HandleSimple(errors.ErrNoActiveSession).Error())
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("date")
	assert.True(t, eh.IsValidationError(ve))
	assert.True(t, eh.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(stderrors.New("x")))

	assert.True(t, eh.IsNotFoundError(errors.NewNotFoundError("time entry", "x")))
	assert.True(t, eh.IsNoActiveSession(fmt.Errorf("stop: %w", errors.ErrNoActiveSession)))
	assert.False(t, eh.IsNoActiveSession(nil))

	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(errors.NewNotFoundError("a", "b")))
}

func TestFormatFieldErrors_FormOrder(t *testing.T) {
	ve := validation.NewValidationError()
	ve.AddRequiredError("notes")
	ve.AddRequiredError("unknown")
	ve.AddRequiredError("date")

	lines := FormatFieldErrors(ve)
	assert.Equal(t, "  - "+ve.Errors[2].Message+"\n  - "+ve.Errors[0].Message+"\n  - "+ve.Errors[1].Message, lines)
}
