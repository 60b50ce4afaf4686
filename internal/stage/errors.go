package stage

import "fmt"

// SchemeError is returned when the input does not start with "file:".
type SchemeError struct {
	Input string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("Expecting input file scheme to be 'file:': '%s'", e.Input)
}

// PathError is returned when the local path does not exist.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("Path isn't valid: '%s'", e.Path)
}

// MoveError wraps any other rename failure.
type MoveError struct {
	From string
	To   string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("Failed to move '%s' to '%s': %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
