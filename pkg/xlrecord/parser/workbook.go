// Package parser provides xlsx container reading utilities.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
)

// ErrInvalidFormat indicates the input is not a readable xlsx container.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the requested sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

const (
	workbookPath     = "xl/workbook.xml"
	workbookRelsPath = "xl/_rels/workbook.xml.rels"
	sharedStringPath = "xl/sharedStrings.xml"
)

type sheetEntry struct {
	name    string
	sheetID string
	rID     string
}

// Workbook is an open xlsx document. It is not safe for concurrent use.
type Workbook struct {
	files        map[string]*zip.File
	closer       io.Closer
	sheets       []sheetEntry
	targets      map[string]string // rId -> part path
	definedNames map[string]string
	date1904     bool
	sst          models.SharedStrings
}

// OpenFile opens the xlsx file at path. The caller must Close it.
func OpenFile(path string) (*Workbook, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	wb, err := newWorkbook(&r.Reader, r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return wb, nil
}

// OpenReader opens an xlsx document held in r.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return newWorkbook(zr, nil)
}

func newWorkbook(r *zip.Reader, closer io.Closer) (*Workbook, error) {
	wb := &Workbook{
		files:  make(map[string]*zip.File, len(r.File)),
		closer: closer,
	}
	for _, f := range r.File {
		wb.files[f.Name] = f
	}

	workbookXML, err := wb.readPart(workbookPath)
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, workbookPath)
	}
	wb.sheets, wb.definedNames, wb.date1904 = parseWorkbook(workbookXML)

	relsXML, err := wb.readPart(workbookRelsPath)
	if err != nil {
		return nil, err
	}
	var sstPath string
	wb.targets, sstPath = parseWorkbookRels(relsXML)
	if sstPath == "" {
		sstPath = sharedStringPath
	}

	sstXML, err := wb.readPart(sstPath)
	if err != nil {
		return nil, err
	}
	if sstXML != nil {
		if wb.sst, err = parseSharedStrings(sstXML); err != nil {
			return nil, fmt.Errorf("%w: shared strings: %v", ErrInvalidFormat, err)
		}
	}

	return wb, nil
}

// Close releases the underlying file, if any.
func (wb *Workbook) Close() error {
	if wb.closer == nil {
		return nil
	}
	return wb.closer.Close()
}

// SheetNames returns the sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

// DefinedName returns the reference of a workbook defined name.
func (wb *Workbook) DefinedName(name string) (string, bool) {
	ref, ok := wb.definedNames[name]
	return ref, ok
}

// DefinedNames returns all defined names of the workbook.
func (wb *Workbook) DefinedNames() map[string]string {
	out := make(map[string]string, len(wb.definedNames))
	for k, v := range wb.definedNames {
		out[k] = v
	}
	return out
}

// SharedStrings returns the workbook shared string table.
func (wb *Workbook) SharedStrings() models.SharedStrings {
	return wb.sst
}

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool {
	return wb.date1904
}

// Sheet reads the sheet with the given name. The match is exact.
func (wb *Workbook) Sheet(name string) (*models.Sheet, error) {
	var entry *sheetEntry
	for i := range wb.sheets {
		if wb.sheets[i].name == name {
			entry = &wb.sheets[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	partPath, ok := wb.targets[entry.rID]
	if !ok {
		partPath = path.Join("xl", "worksheets", "sheet"+entry.sheetID+".xml")
	}
	data, err := wb.readPart(partPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: missing worksheet part %s", ErrInvalidFormat, partPath)
	}

	rows, err := parseWorksheet(data)
	if err != nil {
		return nil, err
	}

	return &models.Sheet{
		Name:          entry.name,
		Rows:          rows,
		SharedStrings: wb.sst,
		Date1904:      wb.date1904,
	}, nil
}

// readPart returns the content of a zip entry, or nil if it does not exist.
func (wb *Workbook) readPart(name string) ([]byte, error) {
	f, ok := wb.files[name]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// resolvePartPath resolves a relationship target against the xl directory.
func resolvePartPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("xl", target)
}

func parseWorkbook(data []byte) ([]sheetEntry, map[string]string, bool) {
	var sheets []sheetEntry
	names := make(map[string]string)
	date1904 := false

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "workbookPr":
			for _, attr := range se.Attr {
				if attr.Name.Local == "date1904" {
					date1904 = attr.Value == "1" || attr.Value == "true"
				}
			}
		case "sheet":
			var entry sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.name = attr.Value
				case "sheetId":
					entry.sheetID = attr.Value
				case "id":
					entry.rID = attr.Value
				}
			}
			if entry.name != "" {
				sheets = append(sheets, entry)
			}
		case "definedName":
			var name string
			for _, attr := range se.Attr {
				if attr.Name.Local == "name" {
					name = attr.Value
				}
			}
			ref, err := readElementText(decoder)
			if err != nil {
				break
			}
			if _, dup := names[name]; name != "" && !dup {
				names[name] = strings.TrimSpace(ref)
			}
		}
	}

	return sheets, names, date1904
}

// parseWorkbookRels returns rId -> worksheet part path, and the shared
// strings part path when declared.
func parseWorkbookRels(data []byte) (map[string]string, string) {
	targets := make(map[string]string)
	var sstPath string
	if data == nil {
		return targets, sstPath
	}

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}

		var rID, relType, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				rID = attr.Value
			case "Type":
				relType = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		switch {
		case strings.HasSuffix(relType, "/sharedStrings"):
			sstPath = resolvePartPath(target)
		case strings.HasSuffix(relType, "/worksheet"):
			targets[rID] = resolvePartPath(target)
		}
	}

	return targets, sstPath
}
