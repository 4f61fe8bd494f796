package models

// SheetInfo summarizes one sheet of a workbook.
type SheetInfo struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// DataRange is the bounding range of non-empty cells (e.g. "A1:D10").
	DataRange string `json:"data_range,omitempty"`
	// Columns holds the header row text in column order.
	Columns []string `json:"columns,omitempty"`
}

// WorkbookInfo represents a workbook-level summary.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in workbook order.
	Sheets []SheetInfo `json:"sheets"`
	// DefinedNames maps defined names to their references.
	DefinedNames map[string]string `json:"defined_names,omitempty"`
}
