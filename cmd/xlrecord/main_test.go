package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"ID", "Item", "Active"},
		{1, "bolt", true},
		{2, "nut", false},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "B2", "todo"))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Items", RefersTo: "Sheet1!$A$1:$B$3"}))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	path := writeWorkbook(t)

	out, err := run(t, "import", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"ID": "1", "Item": "bolt", "Active": "TRUE"},
		{"ID": "2", "Item": "nut", "Active": "FALSE"}
	]`, out)
}

func TestImportCommandTypedFields(t *testing.T) {
	path := writeWorkbook(t)

	out, err := run(t, "import", path, "--format", "text", "-f", "Item", "-f", "ID:int32", "-f", "Active:bool")
	require.NoError(t, err)
	assert.Equal(t, "bolt|1|false\nnut|2|false\n\n", out)
}

func TestImportCommandRange(t *testing.T) {
	path := writeWorkbook(t)

	out, err := run(t, "import", path, "--range", "Items", "-f", "ID:int", "-f", "Item")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"ID": 1, "Item": "bolt"}, {"ID": 2, "Item": "nut"}]`, out)

	_, err = run(t, "import", path, "--range", "Items", "--strict", "-f", "ID:int")
	assert.ErrorContains(t, err, "no matching field")
}

func TestImportCommandOutputFile(t *testing.T) {
	path := writeWorkbook(t)
	dest := filepath.Join(t.TempDir(), "out.yaml")

	out, err := run(t, "import", path, "--sheet", "Notes", "--no-header", "-f", "B", "--format", "yaml", "-o", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestImportCommandEnvironment(t *testing.T) {
	path := writeWorkbook(t)
	t.Setenv("XLRECORD_FORMAT", "text")
	t.Setenv("XLRECORD_SHEET", "Sheet1")

	out, err := run(t, "import", path, "-f", "Item")
	require.NoError(t, err)
	assert.Equal(t, "bolt\nnut\n\n", out)

	// Flags win over the environment.
	out, err = run(t, "import", path, "-f", "Item", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Item": "bolt"}, {"Item": "nut"}]`, out)
}

func TestImportCommandEnvFile(t *testing.T) {
	path := writeWorkbook(t)
	envFile := filepath.Join(t.TempDir(), "xlrecord.env")
	require.NoError(t, os.WriteFile(envFile, []byte("XLRECORD_LOCALE=ja_JP\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("XLRECORD_LOCALE") })

	_, err := run(t, "import", path, "--env-file", envFile)
	assert.ErrorContains(t, err, "unsupported locale")
}

func TestImportCommandErrors(t *testing.T) {
	path := writeWorkbook(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing file", []string{"import", filepath.Join(t.TempDir(), "none.xlsx")}, "file not found"},
		{"bad format", []string{"import", path, "--format", "csv"}, "invalid configuration"},
		{"bad field type", []string{"import", path, "-f", "ID:money"}, "unknown field type"},
		{"bad sheet", []string{"import", path, "--sheet", "Nope"}, "sheet not found"},
		{"bad value", []string{"import", path, "-f", "Item:float64"}, "invalid value format"},
		{"missing env file", []string{"import", path, "--env-file", filepath.Join(t.TempDir(), "none.env")}, "failed to load env file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestSheetsCommand(t *testing.T) {
	path := writeWorkbook(t)

	out, err := run(t, "sheets", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"book_name": "book.xlsx",
		"sheets": [
			{"name": "Sheet1", "data_range": "A1:C3", "columns": ["ID", "Item", "Active"]},
			{"name": "Notes", "data_range": "B2:B2", "columns": ["todo"]}
		],
		"defined_names": {"Items": "Sheet1!$A$1:$B$3"}
	}`, out)
}

func TestCellsCommand(t *testing.T) {
	path := writeWorkbook(t)

	out, err := run(t, "cells", path, "--sheet", "Notes", "--decode")
	require.NoError(t, err)

	var rows []struct {
		R     int `json:"r"`
		Cells []struct {
			Col   string `json:"col"`
			Kind  int    `json:"kind"`
			Value string `json:"value"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].R)
	require.Len(t, rows[0].Cells, 1)
	assert.Equal(t, "B", rows[0].Cells[0].Col)
	assert.Equal(t, 1, rows[0].Cells[0].Kind)
	assert.Equal(t, "todo", rows[0].Cells[0].Value)
}
