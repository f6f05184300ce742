package optimizer

import (
	"fmt"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// table builds a table whose rows are given as plain strings.
func table(name string, headers []string, rows ...[]string) models.Table {
	t := models.Table{
		Name:       name,
		Headers:    headers,
		Rows:       [][]*string{},
		Confidence: models.Scalar(1),
	}
	for _, r := range rows {
		cells := make([]*string, len(r))
		for i, c := range r {
			cells[i] = models.Text(c)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// rowsOf returns n rows with distinct cell values for the given width.
func rowsOf(n, width int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = make([]string, width)
		for c := range rows[i] {
			rows[i][c] = fmt.Sprintf("r%dc%d", i, c)
		}
	}
	return rows
}

func texts(row []*string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		if c == nil {
			out[i] = "<nil>"
		} else {
			out[i] = *c
		}
	}
	return out
}
