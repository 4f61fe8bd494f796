package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
)

// ErrSharedStringIndex indicates a shared string reference that does not
// resolve. The document is corrupt.
var ErrSharedStringIndex = errors.New("shared string index out of range")

// DecodeCell returns the canonical string value of a raw cell.
//
// Shared string references resolve through sst. Boolean cells map "0" and "1"
// to "FALSE" and "TRUE"; other boolean payloads pass through. All other kinds
// return the raw text.
func DecodeCell(cell models.RawCell, sst models.SharedStrings) (string, error) {
	switch cell.Kind {
	case models.KindSharedString:
		i, err := strconv.Atoi(cell.Text)
		if err != nil || i < 0 {
			return "", fmt.Errorf("%w: %q", ErrSharedStringIndex, cell.Text)
		}
		s, ok := sst.Lookup(i)
		if !ok {
			return "", fmt.Errorf("%w: %d (table has %d entries)", ErrSharedStringIndex, i, len(sst))
		}
		return s, nil
	case models.KindBoolean:
		switch cell.Text {
		case "0":
			return "FALSE", nil
		case "1":
			return "TRUE", nil
		}
		return cell.Text, nil
	default:
		return cell.Text, nil
	}
}
