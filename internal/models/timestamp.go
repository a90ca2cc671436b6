package models

import (
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout is the wire format of every timestamp: no fractional
// seconds and no zone offset.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a time.Time serialized with LocalDateTimeLayout.
type LocalDateTime time.Time

// NewLocalDateTime converts t to a LocalDateTime.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime(t)
}

// Time returns the underlying time.Time.
func (t LocalDateTime) Time() time.Time {
	return time.Time(t)
}

func (t LocalDateTime) String() string {
	return time.Time(t).Format(LocalDateTimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. The value is interpreted in the
// local time zone.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*t = LocalDateTime{}
		return nil
	}
	parsed, err := time.ParseInLocation(LocalDateTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = LocalDateTime(parsed)
	return nil
}
