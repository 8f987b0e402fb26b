package engine

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecfuzz/internal/normalize"
)

var (
	// ErrInvalidArgument is returned when Run is called with bad bounds or buffers.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoKinds is returned when an Executor is created without scorers.
	ErrNoKinds = errors.New("no score kinds requested")
)

// Side identifies the column of a row pair.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// RowError reports a cell that could not be decoded.
type RowError struct {
	Row  int
	Side Side
	Err  *normalize.DecodeError
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Side, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
