// Package main provides the CLI entry point for xlrecord.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/locale"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/output"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/parser"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/record"
	"github.com/xuri/excelize/v2"
)

var (
	outputPath    string
	pretty        bool
	noHeader      bool
	strict        bool
	rangeRef      string
	fieldSpecs    []string
	skipEmpty     bool
	noSerialDates bool
	decodeCells   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg = defaultConfig()
	rootCmd := &cobra.Command{
		Use:   "xlrecord",
		Short: "Import spreadsheet rows as typed records",
		Long: `xlrecord reads one sheet of an xlsx file, matches columns to record
fields by header name or column letter, and outputs typed records.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", "", "Load environment defaults from this file (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cfg.Sheet, "sheet", cfg.Sheet, "Sheet to read")

	rootCmd.AddCommand(newImportCmd(), newSheetsCmd(), newCellsCmd())
	return rootCmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Import the rows of a sheet as records",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format: json, yaml, text")
	cmd.Flags().StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for numbers and dates (e.g. en_US, de_DE)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Map columns by letter instead of header text")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on columns without a matching field")
	cmd.Flags().StringVar(&rangeRef, "range", "", "Restrict to a range (A1:D20) or defined name")
	cmd.Flags().StringArrayVarP(&fieldSpecs, "field", "f", nil, "Field as NAME[:TYPE] (repeatable; default: all columns as text)")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "Leave fields at defaults for empty cells")
	cmd.Flags().BoolVar(&noSerialDates, "no-serial-dates", false, "Reject numeric values in date fields")
	return cmd
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List sheets with their data range and header row",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}
}

func newCellsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cells [input.xlsx]",
		Short: "Dump the raw cells of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runCells,
	}
	cmd.Flags().BoolVar(&decodeCells, "decode", false, "Include decoded cell values")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func checkInput(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	loc, err := locale.Lookup(cfg.Locale)
	if err != nil {
		return err
	}

	opts := xlrecord.Options{
		SheetName:           cfg.Sheet,
		HasColumnNames:      xlrecord.Bool(!noHeader),
		ExitOnMissingColumn: strict,
		Locale:              loc,
		Range:               rangeRef,
		SkipEmptyCells:      skipEmpty,
		SerialDates:         xlrecord.Bool(!noSerialDates),
		Logger:              newLogger(),
	}

	wb, err := parser.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	specs, err := resolveFieldSpecs(wb, opts)
	if err != nil {
		return err
	}
	schema, err := record.DynamicSchema("Row", specs)
	if err != nil {
		return fmt.Errorf("invalid fields: %w", err)
	}

	records, err := xlrecord.ImportWorkbook(wb, schema, opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	data, err := output.Render(records, schema.Fields(), output.Format(cfg.Format), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, data)
}

// resolveFieldSpecs parses --field flags, or derives text fields from the
// header row when none are given.
func resolveFieldSpecs(wb *parser.Workbook, opts xlrecord.Options) ([]record.FieldSpec, error) {
	var specs []record.FieldSpec
	for _, s := range fieldSpecs {
		spec, err := record.ParseFieldSpec(s)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) > 0 {
		return specs, nil
	}

	names, err := xlrecord.HeaderFields(wb, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for _, name := range names {
		specs = append(specs, record.FieldSpec{Name: name, Type: record.Text})
	}
	return specs, nil
}

func runSheets(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	info := models.WorkbookInfo{BookName: filepath.Base(inputPath)}
	for _, sheetName := range f.GetSheetList() {
		summary, err := parser.SummarizeSheet(f, sheetName)
		if err != nil {
			return fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		info.Sheets = append(info.Sheets, summary)
	}
	for _, dn := range f.GetDefinedName() {
		if info.DefinedNames == nil {
			info.DefinedNames = make(map[string]string)
		}
		info.DefinedNames[dn.Name] = dn.RefersTo
	}

	data, err := output.ToJSON(info, true)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, data)
}

type cellView struct {
	models.RawCell
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

type rowView struct {
	R     int        `json:"r"`
	Cells []cellView `json:"cells"`
}

func runCells(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := checkInput(inputPath); err != nil {
		return err
	}

	wb, err := parser.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheet, err := wb.Sheet(cfg.Sheet)
	if err != nil {
		names := wb.SheetNames()
		sort.Strings(names)
		return fmt.Errorf("%w (available: %v)", err, names)
	}

	rows := make([]rowView, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		view := rowView{R: row.R, Cells: make([]cellView, 0, len(row.Cells))}
		for _, cell := range row.Cells {
			cv := cellView{RawCell: cell}
			if decodeCells {
				if v, err := parser.DecodeCell(cell, sheet.SharedStrings); err != nil {
					cv.Error = err.Error()
				} else {
					cv.Value = v
				}
			}
			view.Cells = append(view.Cells, cv)
		}
		rows = append(rows, view)
	}

	data, err := output.ToJSON(rows, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, data)
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
