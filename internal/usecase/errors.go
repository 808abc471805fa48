package usecase

import "errors"

// ValidationError: the payload shape is wrong (bad JSON, missing lead id).
// The webhook path acknowledges these with an error body; the backfill path
// skips the record and continues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
