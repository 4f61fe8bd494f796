package xlrecord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/parser"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/record"
)

// ErrInvalidFormat indicates the input is not a readable xlsx document.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrSheetNotFound indicates the configured sheet is absent.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrSharedStringIndex indicates a shared string reference out of range.
var ErrSharedStringIndex = parser.ErrSharedStringIndex

// ErrInvalidRange indicates an unusable Options.Range.
var ErrInvalidRange = parser.ErrInvalidRange

// ErrFormat indicates a value that cannot be parsed into its field's type.
var ErrFormat = record.ErrFormat

// ErrSchemaMismatch indicates a column with no matching record field while
// Options.ExitOnMissingColumn is set.
var ErrSchemaMismatch = errors.New("no matching field on record type")

// ErrKeyNotFound indicates a data row cell in a column absent from the
// header row.
var ErrKeyNotFound = errors.New("column not present in header row")

// ErrDuplicateColumn indicates a header row naming the same column or field
// twice.
var ErrDuplicateColumn = errors.New("duplicate column in header row")

// ErrValidation indicates a record rejected by Options.Validator.
var ErrValidation = errors.New("record validation failed")

// ImportError represents an error while mapping a sheet row to a record.
type ImportError struct {
	SheetName string
	Row       int    // sheet row number, 1-based
	Column    string // column letters
	Field     string
	Value     string
	Record    string
	Err       error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import error in sheet %q", e.SheetName)
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s.%s", e.Record, e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(sheetName string, row int, column string, err error) *ImportError {
	return &ImportError{
		SheetName: sheetName,
		Row:       row,
		Column:    column,
		Err:       err,
	}
}
