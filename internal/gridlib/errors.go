package gridlib

import "errors"

// Sentinel errors for programmatic error handling.
var (
	// ErrInvalidArgument reports a malformed formatter or text-metrics
	// configuration, detected at construction.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConversion reports a value that does not match an expected kind
	// during coercion or inference.
	ErrConversion = errors.New("type conversion")

	// ErrEmptyInput reports that no data rows were found during sampling.
	ErrEmptyInput = errors.New("no data")

	// ErrOutOfRange reports a row or column index beyond current bounds.
	// This is a contract violation, not a user-recoverable condition.
	ErrOutOfRange = errors.New("index out of range")
)
