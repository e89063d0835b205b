package structured

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// ErrUnknownFormat indicates an unsupported serialization format.
var ErrUnknownFormat = errors.New("unknown format")

// Problem is a single schema violation.
type Problem struct {
	Field       string
	Description string
}

// SchemaError reports input that does not match the record schema.
type SchemaError struct {
	Source   string
	Problems []Problem
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Field + ": " + p.Description
	}
	return fmt.Sprintf("%s does not match the rope schema: %s", e.Source, strings.Join(parts, "; "))
}

// Unwrap returns rope.ErrMalformed so callers can treat schema and
// semantic failures alike.
func (e *SchemaError) Unwrap() error {
	return rope.ErrMalformed
}
