package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange indicates a range or defined name that cannot be used.
var ErrInvalidRange = errors.New("invalid range")

// ResolveRange resolves target for the given sheet. target is either a workbook
// defined name or an A1-style range such as "A1:D20", "$A$1:$D$20" or "A:D".
func (wb *Workbook) ResolveRange(sheetName, target string) (models.CellRange, error) {
	if ref, ok := wb.definedNames[target]; ok {
		refSheet, area, err := ParseReference(ref)
		if err != nil {
			return models.CellRange{}, err
		}
		if refSheet != "" && refSheet != sheetName {
			return models.CellRange{}, fmt.Errorf("%w: %s refers to sheet %q, not %q", ErrInvalidRange, target, refSheet, sheetName)
		}
		return area, nil
	}
	return ParseRange(target)
}

// ParseReference parses a reference string.
// Format: 'Sheet Name'!$A$1:$D$10 or SheetName!$A$1:$D$10 or $A$1:$D$10,
// optionally with a leading "=".
func ParseReference(ref string) (string, models.CellRange, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	if strings.Contains(ref, ",") {
		return "", models.CellRange{}, fmt.Errorf("%w: multi-area reference %q", ErrInvalidRange, ref)
	}

	var sheet string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		sheet = strings.ReplaceAll(sheet, "''", "'")
		ref = ref[idx+1:]
	}

	area, err := ParseRange(ref)
	return sheet, area, err
}

// ParseRange parses a range string like $A$1:$D$10 to a CellRange. A single
// cell yields a one-cell range; column-only ranges span every row.
func ParseRange(rangeStr string) (models.CellRange, error) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")
	if rangeStr == "" {
		return models.CellRange{}, fmt.Errorf("%w: empty range", ErrInvalidRange)
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.CellRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, rangeStr)
	}

	startCol, startRow, err := parseRangeEnd(parts[0], 1)
	if err != nil {
		return models.CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, rangeStr, err)
	}
	endCol, endRow, err := parseRangeEnd(parts[1], excelize.TotalRows)
	if err != nil {
		return models.CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, rangeStr, err)
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}

	return models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}

// parseRangeEnd parses "B7" or a bare column "B", using defaultRow for the latter.
func parseRangeEnd(s string, defaultRow int) (int, int, error) {
	if strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) < 0 {
		col, err := excelize.ColumnNameToNumber(s)
		return col, defaultRow, err
	}
	return excelize.CellNameToCoordinates(s)
}
