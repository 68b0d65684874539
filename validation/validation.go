// Package validation collects field-level failures in the shape the API
// reports them: a mapping from field name to a list of messages.
package validation

import (
	"sort"
	"strings"
)

type FieldErrors map[string][]string

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Add appends a message to the field's list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge folds other's messages into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe[field] = append(fe[field], msgs...)
	}
}

// Fields returns the affected field names, sorted for stable output.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for f := range fe {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Error wraps field failures as an error value so services can return them
// across package boundaries and handlers can map them to a 400.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}

func NewError(fe FieldErrors) error { return &Error{Fields: fe} }

// Messages mirroring the wording clients of the original API expect.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
)

// Required records a failure when value is blank.
func Required(field, value string, fe FieldErrors) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, MsgRequired)
	}
}

// NotBlank records a failure when an already-present value is blank.
func NotBlank(field, value string, fe FieldErrors) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, MsgBlank)
	}
}
