package locale

import "errors"

var (
	// ErrInvalidPattern is returned for malformed number or date patterns.
	ErrInvalidPattern = errors.New("locale: invalid pattern")

	// ErrUnparseable is returned when input does not match a pattern.
	ErrUnparseable = errors.New("locale: unparseable input")
)
