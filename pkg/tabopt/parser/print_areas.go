package parser

import (
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas returns the print area regions of each sheet, keyed by sheet name.
// Every range of a print area becomes its own table region.
func ExtractPrintAreas(f *excelize.File) map[string][]models.Region {
	areas := make(map[string][]models.Region)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		for _, ref := range strings.Split(dn.RefersTo, ",") {
			sheet, region, ok := parsePrintAreaRange(ref)
			if !ok {
				continue
			}
			if sheet == "" {
				sheet = dn.Scope
			}
			areas[sheet] = append(areas[sheet], region)
		}
	}
	return areas
}

// parsePrintAreaRange parses one range of a print area, such as 'Price List'!$A$1:$D$10.
// Single cells are not table regions and are rejected.
func parsePrintAreaRange(ref string) (string, models.Region, bool) {
	ref = strings.TrimSpace(ref)
	var sheet string
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		sheet = unquoteSheet(ref[:i])
		ref = ref[i+1:]
	}

	from, to, found := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
	if !found {
		return "", models.Region{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return "", models.Region{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return "", models.Region{}, false
	}

	region := models.Region{R1: min(r1, r2), C1: min(c1, c2), R2: max(r1, r2), C2: max(c1, c2)}
	return sheet, region, true
}

// unquoteSheet strips the quotes of a quoted sheet name and unescapes doubled quotes.
func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
