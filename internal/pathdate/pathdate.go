package pathdate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Root is the destination prefix every dated path lives under.
const Root = "hdfs:/data"

// ErrNoDate is returned when a filename has no YYYYMMDD run.
var ErrNoDate = errors.New("no date found in filename")

var datePattern = regexp.MustCompile(`([0-9]{4})([0-9]{2})([0-9]{2})`)

// Date is the year/month/day triple found in a filename.
// Values are kept as matched; no calendar validation happens.
type Date struct {
	Year  string
	Month string
	Day   string
}

// FindDate returns the leftmost 8-digit run in name split as YYYY MM DD.
func FindDate(name string) (Date, error) {
	m := datePattern.FindStringSubmatch(name)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrNoDate, name)
	}
	return Date{Year: m[1], Month: m[2], Day: m[3]}, nil
}

// Base returns everything after the last '/' in path.
// Unlike filepath.Base, "dir/" yields "".
func Base(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// Destination builds hdfs:/data/{year}/{mon}/{day}/{filename} for the
// basename of path. Parent directories are never searched for a date.
func Destination(path string) (string, error) {
	name := Base(path)
	d, err := FindDate(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", Root, d.Year, d.Month, d.Day, name), nil
}
