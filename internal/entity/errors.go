package entity

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is the kind shared by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the kind shared by every ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateID is returned when a record is inserted with an identifier that already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// NotFoundReason tells apart the causes that surface as a NotFoundError.
type NotFoundReason int

const (
	// ReasonAbsent means no record exists for the identifier.
	ReasonAbsent NotFoundReason = iota
	// ReasonIDMismatch means the candidate identifier differs from the stored one.
	ReasonIDMismatch
)

// NotFoundError is returned when a resource can't be resolved for an identifier.
type NotFoundError struct {
	Resource string
	Reason   NotFoundReason
	Message  string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is reports whether target is the ErrNotFound kind.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

var (
	// ErrVideoNotFound is returned when no video exists for the requested id.
	ErrVideoNotFound = &NotFoundError{
		Resource: "video",
		Reason:   ReasonAbsent,
		Message:  "video não encontrado",
	}
	// ErrVideoIDMismatch is returned when an update carries an id different from the stored video.
	ErrVideoIDMismatch = &NotFoundError{
		Resource: "video",
		Reason:   ReasonIDMismatch,
		Message:  "video não apresenta o ID correto",
	}
	// ErrClipNotFound is returned when no clip exists for the requested id.
	ErrClipNotFound = &NotFoundError{
		Resource: "clip",
		Reason:   ReasonAbsent,
		Message:  "clip not found",
	}
)

// Violation describes a single invalid field.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries the violations found in a candidate record, in check order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages(), "; ")
}

// Is reports whether target is the ErrValidation kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns the human-readable message of every violation.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
