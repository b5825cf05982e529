// Package export writes a set of expenses as a spreadsheet: a header row,
// one row per expense, then a total row.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kharcha/internal/core"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet used by xlsx exports.
const SheetName = "Expenses"

var ErrUnknownFormat = errors.New("unknown export format")

// Header is the first row of every export.
var Header = []string{"Username", "Amount", "Category", "Date"}

const totalLabel = "Total"

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the attachment name for an export taken at now.
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("expenses_%s.%s", now.Format("20060102"), f)
}

// Records returns the full table as strings, header and total row included.
func Records(expenses []core.Expense) [][]string {
	out := make([][]string, 0, len(expenses)+2)
	out = append(out, Header)
	for _, e := range expenses {
		out = append(out, []string{e.Username, e.Amount.String(), e.Category, e.Date.FormValue()})
	}
	return append(out, []string{totalLabel, core.Total(expenses).String(), "", ""})
}

// Write encodes expenses to w in format.
func Write(w io.Writer, format Format, expenses []core.Expense) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, expenses)
	case FormatXLSX:
		return WriteXLSX(w, expenses)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func WriteCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(Records(expenses)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook. Amounts are numeric cells.
func WriteXLSX(w io.Writer, expenses []core.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, e := range expenses {
		row := i + 2
		values := []any{e.Username, float64(e.Amount), e.Category, e.Date.FormValue()}
		if err := setRow(f, row, values); err != nil {
			return err
		}
	}

	total := []any{totalLabel, float64(core.Total(expenses)), "", ""}
	if err := setRow(f, len(expenses)+2, total); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetName, "A", "A", 18)
	_ = f.SetColWidth(SheetName, "B", "B", 12)
	_ = f.SetColWidth(SheetName, "C", "C", 16)
	_ = f.SetColWidth(SheetName, "D", "D", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
