package expreplay

import (
	"fmt"

	"github.com/pkg/errors"
)

// ExpReplayError implements errors unique to an experience replay
// buffer.
type ExpReplayError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Cause returns the underlying error
func (e *ExpReplayError) Cause() error {
	return e.Err
}

var errEmptyMemory = errors.New("memory empty")

// IsEmptyMemory returns whether or not an error reports that a
// replay memory was sampled before any transition was remembered.
func IsEmptyMemory(err error) bool {
	return errors.Cause(err) == errEmptyMemory
}

// ShapeMismatchError reports a vector or matrix whose dimension
// disagrees with the dimension a component was configured with. It
// indicates a misconfigured pairing of environment and model.
type ShapeMismatchError struct {
	Op   string
	What string
	Want int
	Have int
}

// NewShapeMismatch returns a new *ShapeMismatchError
func NewShapeMismatch(op, what string, want, have int) error {
	return &ShapeMismatchError{Op: op, What: what, Want: want, Have: have}
}

// Error satisifes the error interface
func (s *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: invalid %v size \n\twant(%v)\n\thave(%v)", s.Op,
		s.What, s.Want, s.Have)
}

// IsShapeMismatch returns whether or not an error, or the error it
// wraps, is a *ShapeMismatchError
func IsShapeMismatch(err error) bool {
	_, ok := errors.Cause(err).(*ShapeMismatchError)
	return ok
}
