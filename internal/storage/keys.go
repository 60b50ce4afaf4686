package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/model"
)

const stagingPrefix = "_staging"

// ErrEmptyKey is returned for destinations that carry no path.
var ErrEmptyKey = errors.New("destination has no object path")

// ObjectKey is a destination URI mapped onto the bucket.
type ObjectKey struct {
	Scheme model.Scheme
	Path   string // cleaned, no leading slash
}

// KeyFromURI drops the scheme and leading slashes of a destination URI:
// hdfs:/data/2023/06/15/f.log -> data/2023/06/15/f.log
func KeyFromURI(uri string) (ObjectKey, error) {
	scheme, rest, err := model.ParseScheme(uri)
	if err != nil {
		return ObjectKey{}, err
	}
	p := strings.TrimPrefix(path.Clean("/"+rest), "/")
	if p == "" || strings.HasSuffix(rest, "/") {
		return ObjectKey{}, fmt.Errorf("%w: %q", ErrEmptyKey, uri)
	}
	return ObjectKey{Scheme: scheme, Path: p}, nil
}

func (k ObjectKey) Key() string {
	return k.Path
}

// StagingKey is where an upload lands before it is moved to its final key.
func StagingKey(runID model.RunID, name string) string {
	return fmt.Sprintf("%s/%s/%s", stagingPrefix, runID, name)
}
