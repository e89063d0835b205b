package rope

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrOutOfRange indicates an offset or range outside [0, Len].
	ErrOutOfRange = errors.New("offset out of range")

	// ErrMalformed indicates a structured record that cannot be turned into a node.
	ErrMalformed = errors.New("malformed record")
)

// RangeError describes a rejected offset or range.
type RangeError struct {
	Op    string // Operation name (e.g., "split", "insert", "delete")
	Start int    // Offset, or start of the range
	End   int    // End of the range; equal to Start for single offsets
	Len   int    // Length of the tree the operation was applied to
}

func (e *RangeError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("rope: %s: offset %d not in [0, %d]", e.Op, e.Start, e.Len)
	}
	return fmt.Sprintf("rope: %s: range [%d, %d) invalid for length %d", e.Op, e.Start, e.End, e.Len)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

func offsetError(op string, pos, size int) error {
	return &RangeError{Op: op, Start: pos, End: pos, Len: size}
}

func checkOffset(op string, pos, size int) error {
	if pos < 0 || pos > size {
		return offsetError(op, pos, size)
	}
	return nil
}

func checkRange(op string, start, end, size int) error {
	if start < 0 || end > size || start > end {
		return &RangeError{Op: op, Start: start, End: end, Len: size}
	}
	return nil
}

// ValidationError describes a record rejected by NodeFromRecord.
type ValidationError struct {
	Path   string // Dotted path of the offending record (e.g., "root.left")
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rope: invalid record at %s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrMalformed.
func (e *ValidationError) Unwrap() error {
	return ErrMalformed
}

// unknownNode reports a Node implementation outside this package.
// Reaching it means an invariant is broken, so callers panic with it.
func unknownNode(n Node) string {
	return fmt.Sprintf("rope: unknown node variant %T", n)
}
