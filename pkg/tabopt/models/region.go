package models

// Region represents cell coordinate bounds of a table inside a worksheet.
type Region struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by the region.
func (r Region) Rows() int {
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns covered by the region.
func (r Region) Cols() int {
	return r.C2 - r.C1 + 1
}
