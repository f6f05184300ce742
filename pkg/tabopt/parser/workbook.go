package parser

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/logging"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/xuri/excelize/v2"
)

// ReadTables reads one table per print area, or one detected table per sheet
// when a sheet has no print area. The first row of each region is the header row.
// Sheets that cannot be read are skipped with a warning.
func ReadTables(f *excelize.File, sourceFile string, params TableDetectionParams) []models.Table {
	printAreas := ExtractPrintAreas(f)

	var tables []models.Table
	for sheetIdx, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			logging.Logger().Warn("skipping sheet", slog.String("sheet", sheetName), slog.Any("error", err))
			continue
		}

		regions := printAreas[sheetName]
		if len(regions) == 0 {
			regions = DetectRegions(rows, params)
		}

		for k, region := range regions {
			name := sheetName
			if len(regions) > 1 {
				name = fmt.Sprintf("%s #%d", sheetName, k+1)
			}
			t := tableFromRegion(rows, region)
			t.Name = name
			t.SourceFile = sourceFile
			t.Page = sheetIdx + 1
			tables = append(tables, t)
		}
	}

	logging.Logger().Debug("workbook read", slog.String("source", sourceFile), slog.Int("tables", len(tables)))
	return tables
}

// tableFromRegion builds a table from rows within region.
// Blank data rows are skipped.
func tableFromRegion(rows [][]string, region models.Region) models.Table {
	t := models.Table{
		ID:         models.NewTableID(),
		Confidence: models.Scalar(1),
		Rows:       [][]*string{},
	}

	var header []string
	if region.R1-1 < len(rows) {
		header = rows[region.R1-1]
	}
	t.Headers = headerRow(header, region.C1, region.C2)

	for r := region.R1 + 1; r <= region.R2 && r-1 < len(rows); r++ {
		cells := sliceRow(rows[r-1], region.C1, region.C2)
		if len(cells) == 0 {
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
