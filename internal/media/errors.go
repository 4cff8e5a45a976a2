package media

import "errors"

// Error kinds returned by the provider. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDisabled     = errors.New("disabled")
	ErrNetwork      = errors.New("network error")
	ErrParse        = errors.New("parse error")
)
