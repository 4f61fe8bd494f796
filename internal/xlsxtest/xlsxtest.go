// Package xlsxtest builds minimal xlsx documents from hand-written sheet XML
// for tests that need exact control over cell kinds and references.
package xlsxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

// Sheet is one worksheet: its name and the inner XML of <sheetData>.
type Sheet struct {
	Name string
	Data string
}

// Workbook describes the document to build.
type Workbook struct {
	Sheets        []Sheet
	SharedStrings []string
	DefinedNames  map[string]string
	Date1904      bool
	// AbsoluteTargets writes relationship targets as /xl/worksheets/...
	AbsoluteTargets bool
}

// Row renders a <row> element.
func Row(r int, cells ...string) string {
	return fmt.Sprintf(`<row r="%d">%s</row>`, r, strings.Join(cells, ""))
}

// Cell renders a <c> element with a <v> payload. t may be empty.
func Cell(ref, t, v string) string {
	if t == "" {
		return fmt.Sprintf(`<c r="%s"><v>%s</v></c>`, ref, escape(v))
	}
	return fmt.Sprintf(`<c r="%s" t="%s"><v>%s</v></c>`, ref, t, escape(v))
}

// InlineCell renders an inline string cell.
func InlineCell(ref, text string) string {
	return fmt.Sprintf(`<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, escape(text))
}

// Bytes builds the document.
func (w Workbook) Bytes(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	var sheets, rels strings.Builder
	for i, s := range w.Sheets {
		fmt.Fprintf(&sheets, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, escape(s.Name), i+1, i+1)
		target := fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		if w.AbsoluteTargets {
			target = "/xl/" + target
		}
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="%s"/>`, i+1, target)
		write(fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1),
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`+
				s.Data+`</sheetData></worksheet>`)
	}
	fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`, len(w.Sheets)+1)

	var names strings.Builder
	if len(w.DefinedNames) > 0 {
		names.WriteString("<definedNames>")
		for name, ref := range w.DefinedNames {
			fmt.Fprintf(&names, `<definedName name="%s">%s</definedName>`, escape(name), escape(ref))
		}
		names.WriteString("</definedNames>")
	}

	date1904 := ""
	if w.Date1904 {
		date1904 = ` date1904="1"`
	}

	write("xl/workbook.xml",
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`+
			`<workbookPr`+date1904+`/><sheets>`+sheets.String()+`</sheets>`+names.String()+`</workbook>`)
	write("xl/_rels/workbook.xml.rels",
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels.String()+`</Relationships>`)

	var sst strings.Builder
	fmt.Fprintf(&sst, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(w.SharedStrings), len(w.SharedStrings))
	for _, s := range w.SharedStrings {
		fmt.Fprintf(&sst, `<si><t xml:space="preserve">%s</t></si>`, escape(s))
	}
	sst.WriteString("</sst>")
	write("xl/sharedStrings.xml", sst.String())

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
