// Package apperror holds the user-facing business errors raised by the
// picking and settings services. Every error carries a dialog title and a
// message so the API can render it the same way an ERP client would.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNoLabelConfigured = "NO_LABEL_CONFIGURED"
	CodeMissingParameter  = "MISSING_PARAMETER"
	CodePickingDone       = "PICKING_DONE"
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
)

// UserError is a business error shown to the user with a title and a message.
// It is never retried; it aborts the current request.
type UserError struct {
	Code       string         `json:"code"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Is matches on Code so sentinels can be compared with errors.Is
func (e *UserError) Is(target error) bool {
	t, ok := target.(*UserError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns a copy of the error with an added detail
func (e *UserError) WithDetail(key string, value any) *UserError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// Sentinels only carry a code. Match them with errors.Is, raise the New* values.
var (
	ErrNoLabelConfigured = &UserError{Code: CodeNoLabelConfigured}
	ErrMissingParameter  = &UserError{Code: CodeMissingParameter}
	ErrPickingDone       = &UserError{Code: CodePickingDone}
	ErrNotFound          = &UserError{Code: CodeNotFound}
)

// NewNoLabelConfigured is raised by the base label generator
func NewNoLabelConfigured() *UserError {
	return &UserError{
		Code:       CodeNoLabelConfigured,
		Title:      "Error",
		Message:    "No label is configured for selected delivery method.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewMissingParameter reports a system parameter that has to be created by
// an administrator.
func NewMissingParameter(field, key string) *UserError {
	return &UserError{
		Code:  CodeMissingParameter,
		Title: "Missing parameter",
		Message: fmt.Sprintf("'%s' key is missing in 'System Parameter':\n"+
			"Add it and set the corresponding value", field),
		Details:    map[string]any{"key": key},
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewPickingDone rejects carrier changes on a done picking
func NewPickingDone(name string) *UserError {
	return &UserError{
		Code:       CodePickingDone,
		Title:      "User Error !",
		Message:    fmt.Sprintf("Picking %s is done, its carrier can not be changed.", name),
		HTTPStatus: http.StatusConflict,
	}
}

// NewNotFound creates a not found error
func NewNotFound(entity string, id any) *UserError {
	return &UserError{
		Code:       CodeNotFound,
		Title:      "Not found",
		Message:    fmt.Sprintf("%s %v not found", entity, id),
		Details:    map[string]any{"entity": entity, "id": id},
		HTTPStatus: http.StatusNotFound,
	}
}

// NewValidation creates a validation error
func NewValidation(message string) *UserError {
	return &UserError{
		Code:       CodeValidation,
		Title:      "Validation Error",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// As extracts a UserError from an error chain
func As(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// HTTPStatus returns the status to answer with for err
func HTTPStatus(err error) int {
	if ue, ok := As(err); ok && ue.HTTPStatus != 0 {
		return ue.HTTPStatus
	}
	return http.StatusInternalServerError
}
