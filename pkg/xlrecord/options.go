// Package xlrecord imports the rows of an xlsx sheet as typed records.
package xlrecord

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/locale"
)

// DefaultSheetName is the sheet read when Options.SheetName is empty.
const DefaultSheetName = "Sheet1"

// Options configures import behavior.
type Options struct {
	// SheetName is the sheet to read. Empty means DefaultSheetName.
	SheetName string
	// HasColumnNames selects named mode (header text matches field names) or
	// positional mode (column letters match field names).
	// If nil, defaults to true.
	HasColumnNames *bool
	// ExitOnMissingColumn fails the import when a column has no matching
	// field. When false such columns are ignored.
	ExitOnMissingColumn bool
	// Locale governs float and date parsing. If nil, defaults to en_US.
	Locale *locale.Locale
	// Location is used for dates without a zone. If nil, defaults to UTC.
	Location *time.Location
	// Range restricts the import to an A1-style range or a defined name.
	// The first row inside the range is the header row.
	Range string
	// SkipEmptyCells leaves fields at their defaults for empty cell values
	// instead of coercing the empty string.
	SkipEmptyCells bool
	// SerialDates reads numeric date/time cells as Excel serial dates.
	// If nil, defaults to true.
	SerialDates *bool
	// Validator, when set, validates every built record with Struct.
	Validator *validator.Validate
	// Logger receives debug output. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default import options.
func DefaultOptions() Options {
	return Options{
		SheetName: DefaultSheetName,
	}
}

// Bool returns a pointer to b, for the pointer-valued options.
func Bool(b bool) *bool {
	return &b
}

// Sheet returns the sheet name to read.
func (o Options) Sheet() string {
	if o.SheetName == "" {
		return DefaultSheetName
	}
	return o.SheetName
}

// ShouldUseColumnNames returns whether the header row names the fields.
func (o Options) ShouldUseColumnNames() bool {
	if o.HasColumnNames != nil {
		return *o.HasColumnNames
	}
	return true
}

// ShouldParseSerialDates returns whether numeric dates are accepted.
func (o Options) ShouldParseSerialDates() bool {
	if o.SerialDates != nil {
		return *o.SerialDates
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
