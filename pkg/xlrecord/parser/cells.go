package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/xuri/excelize/v2"
)

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	R     int        `xml:"r,attr"`
	Cells []xlsxCell `xml:"c"`
}

type xlsxCell struct {
	R  string        `xml:"r,attr"`
	T  string        `xml:"t,attr"`
	V  string        `xml:"v"`
	IS *xlsxRichText `xml:"is"`
}

// xlsxRichText maps both <si> and <is>: plain <t> or rich text runs.
// Phonetic runs (<rPh>) are not part of the value.
type xlsxRichText struct {
	T    string    `xml:"t"`
	Runs []xlsxRun `xml:"r"`
}

type xlsxRun struct {
	T string `xml:"t"`
}

func (rt *xlsxRichText) text() string {
	if len(rt.Runs) == 0 {
		return rt.T
	}
	var b strings.Builder
	b.WriteString(rt.T)
	for _, r := range rt.Runs {
		b.WriteString(r.T)
	}
	return b.String()
}

type xlsxSST struct {
	Items []xlsxRichText `xml:"si"`
}

func parseSharedStrings(data []byte) (models.SharedStrings, error) {
	var sst xlsxSST
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, err
	}
	table := make(models.SharedStrings, len(sst.Items))
	for i := range sst.Items {
		table[i] = sst.Items[i].text()
	}
	return table, nil
}

// parseWorksheet converts worksheet XML into raw rows. Rows and cells without
// an r attribute follow the previous row or cell.
func parseWorksheet(data []byte) ([]models.RawRow, error) {
	var ws xlsxWorksheet
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("%w: worksheet: %v", ErrInvalidFormat, err)
	}

	rows := make([]models.RawRow, 0, len(ws.Rows))
	prevRow := 0
	for _, xr := range ws.Rows {
		rowNum := xr.R
		if rowNum == 0 {
			rowNum = prevRow + 1
		}
		prevRow = rowNum

		row := models.RawRow{R: rowNum, Cells: make([]models.RawCell, 0, len(xr.Cells))}
		prevCol := 0
		for _, xc := range xr.Cells {
			col, colNum, err := cellColumn(xc.R, prevCol)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidFormat, rowNum, err)
			}
			prevCol = colNum

			text := xc.V
			if xc.IS != nil {
				text = xc.IS.text()
			}
			row.Cells = append(row.Cells, models.RawCell{
				Column: col,
				Text:   text,
				Kind:   models.KindOf(xc.T),
			})
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// cellColumn returns the column letters and number of a cell reference,
// inferring the column after prevCol when the reference is empty.
func cellColumn(ref string, prevCol int) (string, int, error) {
	if ref == "" {
		name, err := excelize.ColumnNumberToName(prevCol + 1)
		return name, prevCol + 1, err
	}
	name, _, err := excelize.SplitCellName(ref)
	if err != nil {
		return "", 0, err
	}
	name = strings.ToUpper(name)
	num, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return "", 0, err
	}
	return name, num, nil
}
