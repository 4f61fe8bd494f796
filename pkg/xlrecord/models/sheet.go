package models

// Sheet represents the raw content of a single sheet plus the workbook-level
// facts needed to decode it.
type Sheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows contains the sheet rows in document order.
	Rows []RawRow `json:"rows,omitempty"`
	// SharedStrings is the workbook shared string table.
	SharedStrings SharedStrings `json:"-"`
	// Date1904 reports whether the workbook uses the 1904 date system.
	Date1904 bool `json:"date1904,omitempty"`
}
