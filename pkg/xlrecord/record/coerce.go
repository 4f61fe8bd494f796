package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/locale"
	"github.com/xuri/excelize/v2"
)

// ErrFormat indicates a decoded string that cannot be parsed into the
// destination field's type.
var ErrFormat = errors.New("invalid value format")

// Coercer converts decoded cell strings into field values.
type Coercer struct {
	// Locale governs float and date parsing. Nil means locale.Default().
	Locale *locale.Locale
	// Location is used for dates without a zone. Nil means UTC.
	Location *time.Location
	// SerialDates enables reading numeric text as an Excel serial date.
	SerialDates bool
	// Date1904 selects the 1904 date system for serial dates.
	Date1904 bool
}

var defaultLocale = locale.Default()

func (c *Coercer) locale() *locale.Locale {
	if c.Locale == nil {
		return defaultLocale
	}
	return c.Locale
}

func (c *Coercer) formatError(value string, t FieldType, cause error) error {
	return fmt.Errorf("%w: %q is not a valid %s in locale %s: %v", ErrFormat, value, t, c.locale().Name(), cause)
}

// Text returns s unchanged.
func (c *Coercer) Text(s string) (string, error) {
	return s, nil
}

// Float32 parses s as a locale-formatted number.
func (c *Coercer) Float32(s string) (float32, error) {
	f, err := c.locale().ParseFloat(s, 32)
	if err != nil {
		return 0, c.formatError(s, Float32, err)
	}
	return float32(f), nil
}

// Float64 parses s as a locale-formatted number.
func (c *Coercer) Float64(s string) (float64, error) {
	f, err := c.locale().ParseFloat(s, 64)
	if err != nil {
		return 0, c.formatError(s, Float64, err)
	}
	return f, nil
}

// Bool reports whether s is exactly "1". Decoded boolean cells read "TRUE"
// and "FALSE", so they always produce false here.
func (c *Coercer) Bool(s string) (bool, error) {
	return s == "1", nil
}

// Int32 parses s as a base-10 integer regardless of locale.
func (c *Coercer) Int32(s string) (int32, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, c.formatError(s, Int32, err)
	}
	return int32(i), nil
}

// Time parses s as a locale-formatted date/time, then as an Excel serial
// date when SerialDates is set.
func (c *Coercer) Time(s string) (time.Time, error) {
	t, err := c.locale().ParseTime(s, c.Location)
	if err == nil {
		return t, nil
	}
	if c.SerialDates {
		if serial, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			if t, serr := excelize.ExcelDateToTime(serial, c.Date1904); serr == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, c.formatError(s, DateTime, err)
}

// Convert converts s to the Go value of type t.
func (c *Coercer) Convert(t FieldType, s string) (any, error) {
	switch t {
	case Text:
		return c.Text(s)
	case Float32:
		return c.Float32(s)
	case Float64:
		return c.Float64(s)
	case Bool:
		return c.Bool(s)
	case Int32:
		return c.Int32(s)
	case DateTime:
		return c.Time(s)
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}
