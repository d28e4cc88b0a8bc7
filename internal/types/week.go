// Package types implements special types for the pennyflow backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"strings"
	"time"
)

// Week is a calendar week, anchored on its Monday.
type Week time.Time

// NewWeek returns the Week containing the given date.
func NewWeek(year int, month time.Month, day int) Week {
	return WeekOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// WeekOf returns the Week in which a time occurs.
//
// The week starts on Monday 00:00 UTC. time.Weekday counts from Sunday,
// so the offset is shifted by six days.
func WeekOf(t time.Time) Week {
	t = t.In(time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -offset).Date()
	return Week(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseWeek parses a string in RFC3339 full-date format and returns the Week
// containing that date.
func ParseWeek(s string) (Week, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Week{}, err
	}

	return WeekOf(t), nil
}

// String returns the Monday of the week formatted as YYYY-MM-DD.
func (w Week) String() string {
	return time.Time(w).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (w Week) MarshalJSON() ([]byte, error) {
	return time.Time(w).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The week is expected to be a string in RFC3339 or full-date format.
// The parsed time is snapped to the Monday of its week.
func (w *Week) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`) // get rid of "
	if value == "" || value == "null" {
		return nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
	}

	*w = WeekOf(t)
	return nil
}

// Start returns the first instant of the week.
func (w Week) Start() time.Time {
	return time.Time(w)
}

// End returns the first instant of the following week.
//
// The window a Week describes is [Start, End).
func (w Week) End() time.Time {
	return time.Time(w).AddDate(0, 0, 7)
}

// AddWeeks adds a specified amount of weeks.
func (w Week) AddWeeks(weeks int) Week {
	return Week(time.Time(w).AddDate(0, 0, 7*weeks))
}

// Next returns the week after w.
func (w Week) Next() Week {
	return w.AddWeeks(1)
}

// Previous returns the week before w.
func (w Week) Previous() Week {
	return w.AddWeeks(-1)
}

// Contains reports whether the time instant is in the week.
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start()) && t.Before(w.End())
}

// Before reports whether the week instant w is before v.
func (w Week) Before(v Week) bool {
	return time.Time(w).Before(time.Time(v))
}

// After reports whether the week instant w is after v.
func (w Week) After(v Week) bool {
	return time.Time(w).After(time.Time(v))
}

// Equal reports whether w and v represent the same week.
func (w Week) Equal(v Week) bool {
	return time.Time(w).Equal(time.Time(v))
}

// IsZero reports if the week is the zero value.
func (w Week) IsZero() bool {
	return time.Time(w).IsZero()
}

// Scan reads the value from the database.
func (w *Week) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*w = Week(nullTime.Time.In(time.UTC))
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (w Week) Value() (driver.Value, error) {
	year, month, day := time.Time(w).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Week) GormDataType() string {
	return "date"
}
