// Package models defines data structures for spreadsheet record import.
package models

// Kind is the declared data kind of a cell (the t attribute of <c>).
type Kind int

const (
	// KindNone marks a cell without a t attribute (plain number).
	KindNone Kind = iota
	// KindSharedString marks a cell whose text is a shared string index.
	KindSharedString
	// KindBoolean marks a cell holding "0" or "1".
	KindBoolean
	// KindOther marks any other declared kind (n, str, inlineStr, e, d).
	KindOther
)

// String returns the OOXML spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return ""
	case KindSharedString:
		return "s"
	case KindBoolean:
		return "b"
	default:
		return "other"
	}
}

// KindOf maps a t attribute value to a Kind.
func KindOf(t string) Kind {
	switch t {
	case "":
		return KindNone
	case "s":
		return KindSharedString
	case "b":
		return KindBoolean
	default:
		return KindOther
	}
}

// RawCell is a single undecoded cell.
type RawCell struct {
	// Column is the column letter sequence (e.g. "A", "AA").
	Column string `json:"col"`
	// Text is the raw <v> payload, or the inline string text.
	Text string `json:"text"`
	// Kind is the declared data kind.
	Kind Kind `json:"kind"`
}

// RawRow is one sheet row in document order. Cells may have gaps.
type RawRow struct {
	// R is the row number (1-based).
	R int `json:"r"`
	// Cells are the row's cells in column order as emitted by the source.
	Cells []RawCell `json:"cells"`
}

// SharedStrings is the workbook shared string table.
type SharedStrings []string

// Lookup returns the entry at index i.
func (s SharedStrings) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}
