package token

import (
	"errors"
	"fmt"
)

// ErrMalformedInput marks token streams whose offsets are not contiguous.
var ErrMalformedInput = errors.New("malformed input")

// OffsetError describes the first token whose offset breaks contiguity.
type OffsetError struct {
	Index    int
	Expected int
	Got      int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("malformed input: token %d starts at %d, expected %d", e.Index, e.Got, e.Expected)
}

func (e *OffsetError) Unwrap() error { return ErrMalformedInput }
