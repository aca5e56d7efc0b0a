package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month string is not in YYYY-MM form.
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

// Month is a calendar month (year + month of year). It is stored and
// serialized as "YYYY-MM", which compares lexicographically in the same
// order as chronologically.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String returns the "YYYY-MM" form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Compare returns -1, 0 or +1 depending on whether m is before, equal
// to, or after other.
func (m Month) Compare(other Month) int {
	switch {
	case m.Year != other.Year:
		if m.Year < other.Year {
			return -1
		}
		return 1
	case m.Month != other.Month:
		if m.Month < other.Month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether m is strictly before other.
func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

// After reports whether m is strictly after other.
func (m Month) After(other Month) bool {
	return m.Compare(other) > 0
}

// Equal reports whether m and other are the same calendar month.
func (m Month) Equal(other Month) bool {
	return m.Compare(other) == 0
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

// FirstDay returns midnight UTC on the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.FirstDay().AddDate(0, 1, -1).Day()
}

// MarshalJSON encodes the month as a "YYYY-MM" JSON string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM" JSON string.
func (m *Month) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}

	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
