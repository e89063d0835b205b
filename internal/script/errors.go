package script

import (
	"errors"
	"fmt"
)

// ErrStateClosed is returned when running a script on a closed state.
var ErrStateClosed = errors.New("script state is closed")

// ScriptError reports a failure while loading or running a named script.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
