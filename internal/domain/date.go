package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	isoDateFormat  = "2006-01-02"
	abbrDateFormat = "02-Jan-2006"
)

// Date is a calendar date without a time component. JSON input accepts
// either "DD-MMM-YYYY" (e.g. "01-Jan-2024") or ISO "YYYY-MM-DD"; output
// is always ISO.
type Date struct {
	time.Time
}

// DateFormatError reports a date string in neither accepted wire format.
type DateFormatError struct {
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected DD-MMM-YYYY", e.Value)
}

// ParseDate parses s in either accepted wire format.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(isoDateFormat, s); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(abbrDateFormat, s); err == nil {
		return Date{t}, nil
	}
	return Date{}, &DateFormatError{Value: s}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" {
		*d = Date{}
		return nil
	}
	str = strings.Trim(str, `"`)
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(isoDateFormat) + `"`), nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(value interface{}) error {
	if value == nil {
		*d = Date{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*d = Date{v}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("unsupported scan type for Date: %T", value)
	}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(isoDateFormat)
}
