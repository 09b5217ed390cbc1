package classify

import "errors"

// Domain errors for classification operations.
var (
	ErrInvalidImage       = errors.New("invalid image reference")
	ErrBackendUnavailable = errors.New("classification backend unavailable")
	ErrMalformedResponse  = errors.New("malformed backend response")
)
