package parser

import (
	"fmt"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/xuri/excelize/v2"
)

// SummarizeSheet reports the data range of a sheet and the text of its first
// non-empty row, which is the header row an import would use.
func SummarizeSheet(f *excelize.File, sheetName string) (models.SheetInfo, error) {
	info := models.SheetInfo{Name: sheetName}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return info, err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return info, nil
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	info.DataRange = fmt.Sprintf("%s:%s", startCell, endCell)

	header := rows[minRow]
	for colIdx := minCol; colIdx <= maxCol; colIdx++ {
		if colIdx < len(header) {
			info.Columns = append(info.Columns, header[colIdx])
		} else {
			info.Columns = append(info.Columns, "")
		}
	}

	return info, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
