package vecfuzz

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecfuzz/internal/engine"
	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/resource"
)

var (
	// ErrNilColumn is returned when a nil column is passed to a batch call.
	ErrNilColumn = errors.New("nil column")

	// ErrNoFuncs is returned when a batch requests no functions.
	ErrNoFuncs = errors.New("no functions requested")

	// ErrLengthMismatch is matched by *LengthMismatchError.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrInvalidConfig is matched by *ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMemoryLimitExceeded is returned when the output buffers of a batch
	// do not fit into the configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
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

// DecodeError reports a cell that is not valid UTF-8.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DecodeError struct {
	Row    int
	Side   Side
	Offset int
	cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("row %d: %s cell is not valid UTF-8 at byte offset %d", e.Row, e.Side, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// LengthMismatchError indicates that the two input columns differ in length.
type LengthMismatchError struct {
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("column length mismatch: left has %d rows, right has %d", e.Left, e.Right)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// ConfigError indicates an invalid engine option or configuration value.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

func configError(field string, value any, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var re *engine.RowError
	if errors.As(err, &re) {
		return newDecodeError(re)
	}

	if errors.Is(err, gram.ErrInvalidN) {
		return &ConfigError{Field: "gram.n", Reason: "must be at least 1", cause: err}
	}
	if errors.Is(err, engine.ErrNoKinds) {
		return fmt.Errorf("%w: %w", ErrNoFuncs, err)
	}

	return err
}

func newDecodeError(re *engine.RowError) *DecodeError {
	side := SideLeft
	if re.Side == engine.SideRight {
		side = SideRight
	}
	return &DecodeError{
		Row:    re.Row,
		Side:   side,
		Offset: re.Err.Offset,
		cause:  re,
	}
}
