package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Scheme is a URI scheme token such as "file" or "hdfs".
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeHDFS Scheme = "hdfs"
)

// ErrNoScheme is returned by ParseScheme for strings without a scheme.
var ErrNoScheme = errors.New("uri has no scheme")

var schemePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*):`)

// Prefix returns the scheme followed by ':'.
func (s Scheme) Prefix() string {
	return string(s) + ":"
}

// Strip removes one leading "scheme:" from uri.
// ok is false when uri does not start with the prefix.
func (s Scheme) Strip(uri string) (rest string, ok bool) {
	if !strings.HasPrefix(uri, s.Prefix()) {
		return uri, false
	}
	return uri[len(s.Prefix()):], true
}

// ParseScheme splits uri into its scheme and the remainder.
func ParseScheme(uri string) (Scheme, string, error) {
	m := schemePattern.FindStringSubmatch(uri)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrNoScheme, uri)
	}
	return Scheme(m[1]), uri[len(m[0]):], nil
}

// RunID represents a UUIDv7 run identifier for a slurp.
type RunID string

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run-id: %w", err)
	}
	return RunID(id.String()), nil
}

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}
