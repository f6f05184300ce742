package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is Excel's sheet name length limit.
const maxSheetNameLen = 31

var sheetNameReplacer = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "-", "?", "", "/", "-", "\\", "-",
)

// NewWorkbook builds a workbook with one sheet per table.
// The header row is bold; nil cells are left empty.
func NewWorkbook(tables []models.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	used := make(map[string]bool)
	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		name := SheetName(t.DisplayName(i), used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, t, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX writes tables as a workbook to w.
func WriteXLSX(w io.Writer, tables []models.Table) error {
	f, err := NewWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes tables as a workbook to path.
func SaveXLSX(path string, tables []models.Table) error {
	f, err := NewWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, t models.Table, headerStyle int) error {
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %q: %w", sheet, err)
	}
	if len(t.Headers) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
			return fmt.Errorf("style header of %q: %w", sheet, err)
		}
	}

	for r, row := range t.Rows {
		values := make([]any, len(row))
		for c, cell := range row {
			if cell != nil {
				values[c] = *cell
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+1, sheet, err)
		}
	}
	return nil
}

// SheetName turns name into a valid, unused sheet name and marks it used.
func SheetName(name string, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Table"
	}
	base = truncate(base, maxSheetNameLen)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(base, maxSheetNameLen-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
