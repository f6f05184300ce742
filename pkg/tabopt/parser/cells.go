// Package parser reads extracted tables out of Excel workbooks.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// cellValue converts a raw cell string to a table cell; blank cells are nil.
func cellValue(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return models.Text(s)
}

// sliceRow returns the cells of row within columns c1..c2 (1-based, inclusive).
// Trailing nil cells are dropped, missing cells read as nil.
func sliceRow(row []string, c1, c2 int) []*string {
	out := make([]*string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		if c-1 < len(row) {
			out = append(out, cellValue(row[c-1]))
		} else {
			out = append(out, nil)
		}
	}
	for len(out) > 0 && out[len(out)-1] == nil {
		out = out[:len(out)-1]
	}
	return out
}

// headerRow returns the region's header texts; blank headers become "Column N".
func headerRow(row []string, c1, c2 int) []string {
	headers := make([]string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		var h string
		if c-1 < len(row) {
			h = strings.TrimSpace(row[c-1])
		}
		if h == "" {
			h = "Column " + strconv.Itoa(c-c1+1)
		}
		headers = append(headers, h)
	}
	return headers
}
