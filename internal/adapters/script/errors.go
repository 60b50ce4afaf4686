package script

import (
	"errors"
	"fmt"
)

// ErrEmptyOutput is returned when a script exits cleanly but prints nothing.
var ErrEmptyOutput = errors.New("received empty stdout from script")

// exitError represents a script that exited with a non-zero status.
type exitError struct {
	Code   int
	Stderr string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("script: exited with status %d: %s", e.Code, e.Stderr)
}

// ScriptError wraps any failure of a script run for external consumers.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %q: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// ExitCode returns the script's exit status, or -1 when it did not exit on
// its own (timeout, failed to start).
func (e *ScriptError) ExitCode() int {
	var ee *exitError
	if errors.As(e.Err, &ee) {
		return ee.Code
	}
	return -1
}
