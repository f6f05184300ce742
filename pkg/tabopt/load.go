package tabopt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/parser"
	"github.com/xuri/excelize/v2"
)

// Load reads tables from an extraction result (.json) or a workbook (.xlsx, .xlsm).
// Every returned table has an ID.
func Load(path string, opts Options) (*models.ExtractionResult, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadExtraction(path)
	case ".xlsx", ".xlsm":
		tables, err := LoadWorkbook(path, opts)
		if err != nil {
			return nil, err
		}
		return &models.ExtractionResult{Tables: tables}, nil
	default:
		return nil, NewLoadError(path, "input", ErrInvalidFormat)
	}
}

// LoadExtraction reads an extraction result document.
func LoadExtraction(path string) (*models.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, NewLoadError(path, "json", err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, NewLoadError(path, "json", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	for i := range result.Tables {
		t := &result.Tables[i]
		if t.Headers == nil {
			t.Headers = []string{}
		}
		if t.Rows == nil {
			t.Rows = [][]*string{}
		}
	}
	result.Tables = models.AssignIDs(result.Tables)
	return &result, nil
}

// LoadWorkbook reads the tables of an Excel workbook.
func LoadWorkbook(path string, opts Options) ([]models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(path, "xlsx", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	return parser.ReadTables(f, filepath.Base(path), opts.tableParams()), nil
}
