package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no record exists for the requested key.
type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string {
	if e.Msg == "" {
		return "not found"
	}
	return e.Msg
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Msg string
	Err error
}

func (e ConflictError) Error() string {
	if e.Msg == "" {
		return "conflict"
	}
	return e.Msg
}

func (e ConflictError) Unwrap() error { return e.Err }

// InvalidInputError reports malformed or missing input.
type InvalidInputError struct {
	Msg string
}

func (e InvalidInputError) Error() string {
	if e.Msg == "" {
		return "invalid input"
	}
	return e.Msg
}

func NewNotFoundError(format string, args ...any) error {
	return NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func NewInvalidInputError(format string, args ...any) error {
	return InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInvalidInput(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}
