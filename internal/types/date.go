package types

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const epochLayout = "2006-01-02"

var epoch = mustParseEpoch()

func mustParseEpoch() time.Time {
	t, err := time.Parse(epochLayout, "1970-01-01")
	if err != nil {
		panic(err)
	}
	return t
}

// Date is the number of days since the Unix epoch. It is total-ordered by its
// underlying integer.
type Date int32

// ParseDate parses a "YYYY-MM-DD<terminator>" string, stopping at terminator.
// The terminator itself is not consumed if absent; a bare "YYYY-MM-DD" parses too.
func ParseDate(s string, terminator byte) (Date, error) {
	if i := strings.IndexByte(s, terminator); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(epochLayout, s)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing date %q", s)
	}
	days := int64(t.Sub(epoch).Hours() / 24)
	return Date(days), nil
}

// MustParseDate is ParseDate but panics on error; used for compile-time-known
// literals such as the TPC-H Q1 high-date filter.
func MustParseDate(s string, terminator byte) Date {
	d, err := ParseDate(s, terminator)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date back as YYYY-MM-DD.
func (d Date) String() string {
	return epoch.AddDate(0, 0, int(d)).Format(epochLayout)
}
