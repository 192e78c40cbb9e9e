package notetable

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates an inconsistent (sample rate, cutoff range) setup.
	// No table can be produced from it.
	ErrConfiguration = errors.New("invalid coefficient table configuration")

	// ErrIO indicates the table artifact could not be written or read.
	ErrIO = errors.New("coefficient table I/O failed")

	// ErrNoteOutOfRange indicates a note number outside [0, 127].
	ErrNoteOutOfRange = errors.New("note number out of range")

	// ErrMalformedArtifact indicates a generated artifact that does not hold
	// exactly one value per note in ascending order.
	ErrMalformedArtifact = errors.New("malformed coefficient table artifact")
)

// ConfigurationError reports the parameter that made a Config unusable.
type ConfigurationError struct {
	// Param is the offending parameter name, e.g. "sample rate".
	Param string
	// Value is the rejected value.
	Value float64
	// Reason describes the violated constraint.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s = %g: %s", ErrConfiguration, e.Param, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// IOError reports a failed artifact read or write.
type IOError struct {
	// Op is the failed operation, e.g. "write" or "rename".
	Op string
	// Path is the artifact path involved.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrIO, e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrIO in addition to the wrapped cause.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func invalid(param string, value float64, reason string) error {
	return &ConfigurationError{Param: param, Value: value, Reason: reason}
}
