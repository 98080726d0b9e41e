package colour

import "errors"

// ErrInvalidInput is returned for empty pixel sets, non-positive colour
// counts and malformed pixel buffers.
var ErrInvalidInput = errors.New("invalid input")
