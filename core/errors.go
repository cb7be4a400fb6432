package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCellWidth is wrapped by ConfigError for unsupported widths.
	ErrInvalidCellWidth = errors.New("cell width must be 8, 16, 32 or 64")
	// ErrInvalidTapeLength is wrapped by ConfigError for a tape length below 1.
	ErrInvalidTapeLength = errors.New("tape length must be at least 1")
	// ErrOutOfBounds is wrapped by every BoundsError.
	ErrOutOfBounds = errors.New("data pointer moved out of bounds")
	// ErrMissingEnd is reported when code does not end with End.
	ErrMissingEnd = errors.New("code does not end with End")
	// ErrBadInstruction is reported when the machine meets an instruction it
	// cannot execute.
	ErrBadInstruction = errors.New("cannot execute instruction")
	// ErrStepLimit is reported when a machine built with a step limit runs out
	// of steps.
	ErrStepLimit = errors.New("step limit reached")
)

// ConfigError reports an invalid machine parameter.
type ConfigError struct {
	Field string
	Value int
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Side is the tape edge a pointer crossed.
type Side int

// Tape edges.
const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}

	return "right"
}

// BoundsError reports pointer movement past either end of the tape.
type BoundsError struct {
	Side    Side
	Pointer int
	Offset  int
	Limit   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v (too far %s): pointer %d offset %+d tape limit %d",
		ErrOutOfBounds, e.Side, e.Pointer, e.Offset, e.Limit)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// IOError reports a failed read, write or flush on the console.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
