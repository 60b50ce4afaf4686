package stage

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/model"
)

// TimestampLayout is YYYYMMDD-HHMMSS on a 24h clock.
const TimestampLayout = "20060102-150405"

var timestampPattern = regexp.MustCompile(`[0-9]{8}-[0-9]{6}`)

// Stager renames local files in place so they carry a generation timestamp.
type Stager struct {
	// Now defaults to time.Now. The local zone of the returned time is used.
	Now func() time.Time

	rename func(from, to string) error
}

// NewStager creates a Stager using the wall clock and os.Rename.
func NewStager() *Stager {
	return &Stager{Now: time.Now, rename: os.Rename}
}

// Timestamp formats t as YYYYMMDD-HHMMSS.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// HasTimestamp reports whether name already contains a YYYYMMDD-HHMMSS run.
func HasTimestamp(name string) bool {
	return timestampPattern.MatchString(name)
}

// StampName inserts "-ts" before the first '.' of name, or appends it when
// there is no dot. Names that already carry a timestamp are returned as is.
func StampName(name, ts string) string {
	if HasTimestamp(name) {
		return name
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i] + "-" + ts + name[i:]
	}
	return name + "-" + ts
}

// Stage validates a file: URI, renames the file it points at and returns the
// URI of the renamed file.
//
// The rename is attempted directly; a missing source surfaces as *PathError
// and any other failure as *MoveError.
func (s *Stager) Stage(line string) (string, error) {
	input := strings.TrimSpace(line)

	path, ok := model.SchemeFile.Strip(input)
	if !ok {
		return "", &SchemeError{Input: input}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rename := os.Rename
	if s.rename != nil {
		rename = s.rename
	}

	name := StampName(filepath.Base(path), Timestamp(now()))
	target := filepath.Join(filepath.Dir(path), name)

	slog.Debug("staging file", "from", path, "to", target)

	if err := rename(path, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &PathError{Path: path}
		}
		return "", &MoveError{From: path, To: target, Err: err}
	}

	slog.Info("file staged", "path", target)
	return model.SchemeFile.Prefix() + target, nil
}
