package apperrors

import (
	"errors"
	"fmt"
)

// Common error types shared across the connect bridge
var (
	// ErrConfiguration signals invalid or missing startup configuration.
	// It is the sole fatal error class: the process must refuse to serve
	// traffic rather than run with validation disabled.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInternal covers unexpected failures that carry no useful
	// client-facing detail.
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
