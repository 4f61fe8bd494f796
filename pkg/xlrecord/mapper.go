package xlrecord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/parser"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/record"
	"github.com/xuri/excelize/v2"
)

// ColumnMap maps column letters to record field names. It is built once from
// the header row and not modified afterwards.
type ColumnMap map[string]string

// NewColumnMap builds the column map from the header row. In named mode each
// column maps to its decoded header text; otherwise each column maps to its
// own letters.
func NewColumnMap(header models.RawRow, sst models.SharedStrings, named bool) (ColumnMap, error) {
	columns := make(ColumnMap, len(header.Cells))
	owners := make(map[string]string, len(header.Cells)) // field -> column

	for _, cell := range header.Cells {
		if _, dup := columns[cell.Column]; dup {
			return nil, NewImportError("", header.R, cell.Column, ErrDuplicateColumn)
		}

		key := cell.Column
		if named {
			decoded, err := parser.DecodeCell(cell, sst)
			if err != nil {
				return nil, NewImportError("", header.R, cell.Column, err)
			}
			key = decoded
		}
		// blank header cells (formatted but empty) never name a field
		if key == "" {
			columns[cell.Column] = key
			continue
		}
		if prev, dup := owners[key]; dup {
			return nil, NewImportError("", header.R, cell.Column,
				fmt.Errorf("%w: %q also names column %s", ErrDuplicateColumn, key, prev))
		}

		columns[cell.Column] = key
		owners[key] = cell.Column
	}

	return columns, nil
}

// Fields returns the field names of the header row in column order. Blank
// header cells are left out.
func (m ColumnMap) Fields(header models.RawRow) []string {
	fields := make([]string, 0, len(header.Cells))
	for _, cell := range header.Cells {
		if key, ok := m[cell.Column]; ok && key != "" {
			fields = append(fields, key)
		}
	}
	return fields
}

// MapSheet builds one record per data row of sheet. The first row (within
// Options.Range, which must be an A1-style range here) is the header row and
// yields no record. Any failure aborts the whole mapping.
func MapSheet[T any](sheet *models.Sheet, schema *record.Schema[T], opts Options) ([]T, error) {
	var area *models.CellRange
	if opts.Range != "" {
		a, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, err
		}
		area = &a
	}
	return mapSheet(sheet, schema, opts, area, opts.logger())
}

type fieldValue struct {
	column string
	field  string
	value  string
}

type mapper[T any] struct {
	sheet   *models.Sheet
	schema  *record.Schema[T]
	opts    Options
	coercer *record.Coercer
	columns ColumnMap
	skipped map[string]bool
	log     *slog.Logger
}

func mapSheet[T any](sheet *models.Sheet, schema *record.Schema[T], opts Options, area *models.CellRange, log *slog.Logger) ([]T, error) {
	m := &mapper[T]{
		sheet:  sheet,
		schema: schema,
		opts:   opts,
		coercer: &record.Coercer{
			Locale:      opts.Locale,
			Location:    opts.Location,
			SerialDates: opts.ShouldParseSerialDates(),
			Date1904:    sheet.Date1904,
		},
		skipped: make(map[string]bool),
		log:     log,
	}

	var records []T
	headerConsumed := false
	for _, row := range sheet.Rows {
		if area != nil {
			var ok bool
			if row, ok = clipRow(row, *area); !ok {
				continue
			}
		}

		if !headerConsumed {
			columns, err := NewColumnMap(row, sheet.SharedStrings, opts.ShouldUseColumnNames())
			if err != nil {
				return nil, m.annotate(err)
			}
			m.columns = columns
			headerConsumed = true
			log.Debug("column map built", "row", row.R, "columns", len(columns), "named", opts.ShouldUseColumnNames())
			continue
		}

		rec, err := m.build(row)
		if err != nil {
			return nil, m.annotate(err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// build creates the record for one data row.
func (m *mapper[T]) build(row models.RawRow) (T, error) {
	var zero T

	values := make([]fieldValue, 0, len(row.Cells))
	for _, cell := range row.Cells {
		decoded, err := parser.DecodeCell(cell, m.sheet.SharedStrings)
		if err != nil {
			return zero, NewImportError("", row.R, cell.Column, err)
		}
		field, ok := m.columns[cell.Column]
		if !ok {
			return zero, NewImportError("", row.R, cell.Column, ErrKeyNotFound)
		}
		values = append(values, fieldValue{column: cell.Column, field: field, value: decoded})
	}

	rec := m.schema.New()
	for _, v := range values {
		field, ok := m.schema.Field(v.field)
		if !ok {
			if m.opts.ExitOnMissingColumn {
				return zero, m.fieldError(row.R, v, fmt.Errorf("%w: no %q field on type %s", ErrSchemaMismatch, v.field, m.schema.Name()))
			}
			if !m.skipped[v.field] {
				m.skipped[v.field] = true
				m.log.Debug("column ignored", "column", v.column, "field", v.field)
			}
			continue
		}
		if m.opts.SkipEmptyCells && v.value == "" {
			continue
		}
		if err := field.Assign(&rec, v.value, m.coercer); err != nil {
			return zero, m.fieldError(row.R, v, err)
		}
	}

	if m.opts.Validator != nil {
		if err := m.opts.Validator.Struct(rec); err != nil {
			var invalid *validator.InvalidValidationError
			if !errors.As(err, &invalid) {
				e := NewImportError("", row.R, "", fmt.Errorf("%w: %v", ErrValidation, err))
				e.Record = m.schema.Name()
				return zero, e
			}
		}
	}

	return rec, nil
}

func (m *mapper[T]) fieldError(row int, v fieldValue, err error) *ImportError {
	e := NewImportError("", row, v.column, err)
	e.Field = v.field
	e.Value = v.value
	e.Record = m.schema.Name()
	return e
}

// annotate fills in the sheet name of an ImportError.
func (m *mapper[T]) annotate(err error) error {
	var ie *ImportError
	if errors.As(err, &ie) {
		ie.SheetName = m.sheet.Name
	}
	return err
}

// clipRow drops the cells of row outside area. It reports false when the row
// itself lies outside area.
func clipRow(row models.RawRow, area models.CellRange) (models.RawRow, bool) {
	if !area.ContainsRow(row.R) {
		return row, false
	}
	clipped := models.RawRow{R: row.R, Cells: make([]models.RawCell, 0, len(row.Cells))}
	for _, cell := range row.Cells {
		col, err := excelize.ColumnNameToNumber(cell.Column)
		if err == nil && area.ContainsColumn(col) {
			clipped.Cells = append(clipped.Cells, cell)
		}
	}
	return clipped, true
}
