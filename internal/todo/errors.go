package todo

import "errors"

// Validation errors are detected before the store is ever called; they
// are surfaced next to the originating input.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrForbiddenWord = errors.New("title must not contain the word \"error\"")
	ErrMissingID     = errors.New("id is required")
	ErrBadTimestamp  = errors.New("invalid created_at timestamp")
)

// ErrNotFound is returned when the target item does not exist or is
// owned by someone else. The two cases are deliberately
// indistinguishable.
var ErrNotFound = errors.New("todo not found")

// ErrUnknownIntent marks a malformed or unrecognized mutation kind.
// It is an integrity fault, not a user error.
var ErrUnknownIntent = errors.New("unknown intent kind")

// IsValidationError reports whether err is one of the local validation
// errors that never reach the store.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrForbiddenWord) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrBadTimestamp)
}
