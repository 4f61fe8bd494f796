package parser

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlrecord-go/internal/xlsxtest"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
)

func openFixture(t *testing.T, w xlsxtest.Workbook) *Workbook {
	t.Helper()
	data := w.Bytes(t)
	wb, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestWorkbookSheets(t *testing.T) {
	wb := openFixture(t, xlsxtest.Workbook{
		Sheets: []xlsxtest.Sheet{
			{Name: "Data", Data: xlsxtest.Row(1, xlsxtest.Cell("A1", "s", "0"))},
			{Name: "Other & More", Data: xlsxtest.Row(2, xlsxtest.InlineCell("B2", "x"))},
		},
		SharedStrings: []string{"Name"},
		DefinedNames:  map[string]string{"Items": "Data!$A$1:$C$4"},
		Date1904:      true,
	})

	assert.Equal(t, []string{"Data", "Other & More"}, wb.SheetNames())
	assert.Equal(t, models.SharedStrings{"Name"}, wb.SharedStrings())
	assert.True(t, wb.Date1904())

	ref, ok := wb.DefinedName("Items")
	assert.True(t, ok)
	assert.Equal(t, "Data!$A$1:$C$4", ref)
	_, ok = wb.DefinedName("Missing")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"Items": "Data!$A$1:$C$4"}, wb.DefinedNames())

	sheet, err := wb.Sheet("Other & More")
	require.NoError(t, err)
	assert.Equal(t, "Other & More", sheet.Name)
	assert.True(t, sheet.Date1904)
	assert.Equal(t, []models.RawRow{
		{R: 2, Cells: []models.RawCell{{Column: "B", Text: "x", Kind: models.KindOther}}},
	}, sheet.Rows)
}

func TestWorkbookSheetNotFound(t *testing.T) {
	wb := openFixture(t, xlsxtest.Workbook{
		Sheets: []xlsxtest.Sheet{{Name: "Sheet1"}},
	})

	_, err := wb.Sheet("sheet1")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWorkbookAbsoluteTargets(t *testing.T) {
	wb := openFixture(t, xlsxtest.Workbook{
		Sheets:          []xlsxtest.Sheet{{Name: "Sheet1", Data: xlsxtest.Row(1, xlsxtest.Cell("A1", "", "7"))}},
		AbsoluteTargets: true,
	})

	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "7", sheet.Rows[0].Cells[0].Text)
}

func TestWorkbookEmptySheet(t *testing.T) {
	wb := openFixture(t, xlsxtest.Workbook{
		Sheets: []xlsxtest.Sheet{{Name: "Sheet1"}},
	})

	sheet, err := wb.Sheet("Sheet1")
	require.NoError(t, err)
	assert.Empty(t, sheet.Rows)
	assert.Empty(t, sheet.SharedStrings)
}

func TestOpenInvalidFormat(t *testing.T) {
	data := []byte("not a zip archive")
	_, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOpenFileNotExist(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrInvalidFormat)
}

func TestResolveRange(t *testing.T) {
	wb := openFixture(t, xlsxtest.Workbook{
		Sheets: []xlsxtest.Sheet{{Name: "Data"}, {Name: "Other"}},
		DefinedNames: map[string]string{
			"Items":  "Data!$A$1:$C$4",
			"Spread": "Data!$A$1:$A$2,Data!$C$1:$C$2",
		},
	})

	area, err := wb.ResolveRange("Data", "Items")
	require.NoError(t, err)
	assert.Equal(t, models.CellRange{R1: 1, C1: 1, R2: 4, C2: 3}, area)

	area, err = wb.ResolveRange("Data", "B2:C3")
	require.NoError(t, err)
	assert.Equal(t, models.CellRange{R1: 2, C1: 2, R2: 3, C2: 3}, area)

	_, err = wb.ResolveRange("Other", "Items")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = wb.ResolveRange("Data", "Spread")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = wb.ResolveRange("Data", "NoSuchName")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
