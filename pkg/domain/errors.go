package domain

import (
	"errors"
	"fmt"
)

// error kinds reported to clients, see server.errorCode for the status mapping
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("invalid verification code")
	ErrFetch      = errors.New("fetch failed")
	ErrExtraction = errors.New("extraction failed")
	ErrNotFound   = errors.New("not found")
)

// FetchError is returned when a page can't be retrieved after all attempts
type FetchError struct {
	URL      string
	Attempts int
	Err      error // last observed cause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the last cause
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) true for any FetchError
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Validationf returns a validation error with formatted details
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Extractionf returns an extraction error with formatted details
func Extractionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExtraction, fmt.Sprintf(format, args...))
}
