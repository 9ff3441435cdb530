package commands

import (
	"errors"
	"fmt"
)

// Construction and render errors
var (
	// ErrEmptyProgram is returned when a step template is empty
	ErrEmptyProgram = errors.New("empty program")

	// ErrNoSteps is returned when a command is built without steps
	ErrNoSteps = errors.New("command has no steps")

	// ErrParameterCount is returned when the number of values does not match
	// the number of declared parameters
	ErrParameterCount = errors.New("parameter count mismatch")

	// ErrInvalidIndex is wrapped by PlaceholderError when a placeholder body
	// is not a non-negative integer
	ErrInvalidIndex = errors.New("placeholder is not a non-negative integer")
)

// PlaceholderError reports a malformed "{N}" placeholder in a template
type PlaceholderError struct {
	Placeholder string
	Err         error
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("invalid placeholder %q: %v", e.Placeholder, e.Err)
}

func (e *PlaceholderError) Unwrap() error { return e.Err }

// MissingParameterError reports a parameter index that is referenced but has
// no declaration, or no value at render time
type MissingParameterError struct {
	Index int
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter {%d}", e.Index)
}

// UnusedParameterError reports a declared parameter no step references
type UnusedParameterError struct {
	Index int
}

func (e *UnusedParameterError) Error() string {
	return fmt.Sprintf("parameter {%d} is declared but never used", e.Index)
}

// MismatchError reports a value that does not satisfy its declaration
type MismatchError struct {
	Index     int
	Parameter string
	Reason    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("value for parameter {%d} (%s) does not match its declaration: %s", e.Index, e.Parameter, e.Reason)
}
