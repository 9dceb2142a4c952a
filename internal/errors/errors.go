package errors

import (
	"errors"
	"fmt"
)

// Plumbing errors. Failures surfaced by the bridge itself are always
// *identity.ErrorObject; these cover configuration and local storage.
var (
	// Configuration errors
	ErrMissingUserPoolID = errors.New("user pool id is required")
	ErrMissingClientID   = errors.New("client id is required")

	// Session storage errors
	ErrNoStoredSession  = errors.New("no stored session")
	ErrCorruptedSession = errors.New("stored session is corrupted")

	// Token errors
	ErrMalformedToken = errors.New("malformed token")
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
