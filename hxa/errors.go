package hxa

import (
	"errors"
	"fmt"
)

// Error kinds reported by the decoder. All terminate the in-progress call;
// the partially built File stays safe to Reset. Match with errors.Is.
var (
	// ErrNotHxaFile means the magic value did not match. It is reported
	// before anything is allocated.
	ErrNotHxaFile = errors.New("not an HxA file")

	// ErrTruncated means the stream ended before a required field,
	// regardless of recursion depth.
	ErrTruncated = errors.New("truncated input")

	ErrUnknownNodeKind  = errors.New("unrecognized node kind")
	ErrUnknownMetaType  = errors.New("unrecognized meta type")
	ErrUnknownLayerType = errors.New("unrecognized layer type")
	ErrUnknownImageType = errors.New("unrecognized image type")

	// ErrZeroComponents means a layer declared zero components.
	ErrZeroComponents = errors.New("invalid component count")

	// ErrTooDeep means node/meta nesting exceeded MaxDepth. The format
	// declares no limit; the cap guards against hostile input.
	ErrTooDeep = errors.New("nesting too deep")
)

// FormatError is a structural decode failure annotated with the byte offset
// at which it was detected. It wraps one of the sentinel kinds above (or a
// descriptive error for arithmetic overflow cases).
type FormatError struct {
	Offset int64
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("hxa: %v at byte %d", e.Err, e.Offset)
}

func (e *FormatError) Unwrap() error { return e.Err }
