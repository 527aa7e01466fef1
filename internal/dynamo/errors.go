package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidArgument indicates a construction parameter outside its valid range.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrFinished indicates a run was requested on a solver that already reached its horizon.
	ErrFinished = errors.New("dynamo: simulation already finished")

	// ErrCanceled indicates the run was interrupted between two steps.
	ErrCanceled = errors.New("dynamo: simulation canceled by context")
)

// ParamError reports the offending construction parameter.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %v (%s)", ErrInvalidArgument, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidArgument
}
