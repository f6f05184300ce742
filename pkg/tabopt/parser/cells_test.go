package parser

import (
	"reflect"
	"testing"
)

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"  hello ", "hello"},
		{"", "<nil>"},
		{"   ", "<nil>"},
	}

	for _, tt := range tests {
		result := str(cellValue(tt.input))
		if result != tt.expected {
			t.Errorf("cellValue(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestSliceRow(t *testing.T) {
	tests := []struct {
		row      []string
		c1, c2   int
		expected []string
	}{
		{[]string{"a", "b", "c"}, 1, 3, []string{"a", "b", "c"}},
		{[]string{"x", "a", "b", "c"}, 2, 3, []string{"a", "b"}},
		{[]string{"a", "", "c"}, 1, 3, []string{"a", "<nil>", "c"}},
		{[]string{"a", "", ""}, 1, 3, []string{"a"}},
		{[]string{"a"}, 1, 4, []string{"a"}},
		{[]string{"", ""}, 1, 2, []string{}},
	}

	for _, tt := range tests {
		cells := sliceRow(tt.row, tt.c1, tt.c2)
		result := make([]string, 0, len(cells))
		for _, c := range cells {
			result = append(result, str(c))
		}
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("sliceRow(%q, %d, %d) = %q, expected %q", tt.row, tt.c1, tt.c2, result, tt.expected)
		}
	}
}

func TestHeaderRow(t *testing.T) {
	result := headerRow([]string{"", " Name ", "", "Price"}, 2, 5)
	expected := []string{"Name", "Column 2", "Price", "Column 4"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("headerRow = %q, expected %q", result, expected)
	}
}
