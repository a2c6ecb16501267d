package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. It is stored as a SQL DATE and encoded in JSON as
// YYYY-MM-DD, the layout requests are accepted in.
type Date datatypes.Date

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

func (d *Date) Scan(value any) error { return (*datatypes.Date)(d).Scan(value) }

func (d Date) Value() (driver.Value, error) { return datatypes.Date(d).Value() }

func (Date) GormDataType() string { return "date" }

// MarshalJSON writes the zero date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if time.Time(d).IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts YYYY-MM-DD and, for older payloads, RFC 3339.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}
	*d = Date(t)
	return nil
}
