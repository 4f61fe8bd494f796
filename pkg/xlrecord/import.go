package xlrecord

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/parser"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/record"
)

// Importer reads one sheet of an xlsx file into records of type T. Its
// configuration is fixed at construction; each Import call opens and closes
// the file independently.
type Importer[T any] struct {
	path   string
	schema *record.Schema[T]
	opts   Options
}

// NewImporter creates an importer for the file at path.
func NewImporter[T any](path string, schema *record.Schema[T], opts Options) *Importer[T] {
	return &Importer[T]{path: path, schema: schema, opts: opts}
}

// Import reads the configured sheet and returns one record per data row.
func (im *Importer[T]) Import() ([]T, error) {
	return Import(im.path, im.schema, im.opts)
}

// Import reads a sheet of the xlsx file at path into records.
func Import[T any](path string, schema *record.Schema[T], opts Options) ([]T, error) {
	wb, err := parser.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return importWorkbook(wb, filepath.Base(path), schema, opts)
}

// ImportReader reads a sheet of the xlsx document held in r into records.
func ImportReader[T any](r io.ReaderAt, size int64, schema *record.Schema[T], opts Options) ([]T, error) {
	wb, err := parser.OpenReader(r, size)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return importWorkbook(wb, "", schema, opts)
}

// ImportWorkbook reads a sheet of an already open workbook into records.
func ImportWorkbook[T any](wb *parser.Workbook, schema *record.Schema[T], opts Options) ([]T, error) {
	return importWorkbook(wb, "", schema, opts)
}

func importWorkbook[T any](wb *parser.Workbook, source string, schema *record.Schema[T], opts Options) ([]T, error) {
	log := opts.logger().With(
		"run", uuid.NewString(),
		"source", source,
		"sheet", opts.Sheet(),
		"record", schema.Name(),
	)

	sheet, area, err := readSheet(wb, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("sheet read", "rows", len(sheet.Rows), "range", opts.Range)

	records, err := mapSheet(sheet, schema, opts, area, log)
	if err != nil {
		log.Debug("import failed", "error", err)
		return nil, err
	}

	log.Debug("import complete", "records", len(records))
	return records, nil
}

// HeaderFields returns the field names the header row of the configured
// sheet maps to, in column order.
func HeaderFields(wb *parser.Workbook, opts Options) ([]string, error) {
	sheet, area, err := readSheet(wb, opts)
	if err != nil {
		return nil, err
	}

	for _, row := range sheet.Rows {
		if area != nil {
			var ok bool
			if row, ok = clipRow(row, *area); !ok {
				continue
			}
		}
		columns, err := NewColumnMap(row, sheet.SharedStrings, opts.ShouldUseColumnNames())
		if err != nil {
			var ie *ImportError
			if errors.As(err, &ie) {
				ie.SheetName = sheet.Name
			}
			return nil, err
		}
		return columns.Fields(row), nil
	}
	return nil, nil
}

func readSheet(wb *parser.Workbook, opts Options) (*models.Sheet, *models.CellRange, error) {
	sheet, err := wb.Sheet(opts.Sheet())
	if err != nil {
		return nil, nil, err
	}
	if opts.Range == "" {
		return sheet, nil, nil
	}
	area, err := wb.ResolveRange(sheet.Name, opts.Range)
	if err != nil {
		return nil, nil, err
	}
	return sheet, &area, nil
}
