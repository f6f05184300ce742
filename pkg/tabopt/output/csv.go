package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// WriteCSV writes t to w with the header row first.
// Rows are padded to the header width; nil cells are written empty.
func WriteCSV(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		width := len(t.Headers)
		if len(row) > width {
			width = len(row)
		}
		record := make([]string, width)
		for c, cell := range row {
			if cell != nil {
				record[c] = *cell
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVDir writes one CSV file per table into dir and returns the file paths.
func WriteCSVDir(dir string, tables []models.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	used := make(map[string]bool)
	paths := make([]string, 0, len(tables))
	for i, t := range tables {
		name := SheetName(t.DisplayName(i), used)
		path := filepath.Join(dir, fmt.Sprintf("%02d_%s.csv", i+1, name))
		if err := writeCSVFile(path, t); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t models.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
