package parser

import (
	"reflect"
	"testing"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

func TestDetectRegions(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected []models.Region
	}{
		{"empty", nil, nil},
		{"blank cells only", [][]string{{"", " "}, {""}}, nil},
		{"too few cells", [][]string{{"a", "b"}}, nil},
		{
			"offset block",
			[][]string{
				{},
				{"", "Name", "Price"},
				{"", "Basic", "$10"},
			},
			[]models.Region{{R1: 2, C1: 2, R2: 3, C2: 3}},
		},
	}

	for _, tt := range tests {
		result := DetectRegions(tt.rows, DefaultTableParams())
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: DetectRegions = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestParsePrintAreaRange(t *testing.T) {
	tests := []struct {
		ref    string
		sheet  string
		region models.Region
		ok     bool
	}{
		{"'Price List'!$A$1:$C$4", "Price List", models.Region{R1: 1, C1: 1, R2: 4, C2: 3}, true},
		{" Sheet1!$D$1:$E$3", "Sheet1", models.Region{R1: 1, C1: 4, R2: 3, C2: 5}, true},
		{"'Bob''s'!B5:A1", "Bob's", models.Region{R1: 1, C1: 1, R2: 5, C2: 2}, true},
		{"$A$1:$B$2", "", models.Region{R1: 1, C1: 1, R2: 2, C2: 2}, true},
		{"Sheet1!A1", "", models.Region{}, false},
		{"Sheet1!A1:ZZZZ9", "", models.Region{}, false},
	}

	for _, tt := range tests {
		sheet, region, ok := parsePrintAreaRange(tt.ref)
		if ok != tt.ok || sheet != tt.sheet || region != tt.region {
			t.Errorf("parsePrintAreaRange(%q) = %q, %v, %v, expected %q, %v, %v",
				tt.ref, sheet, region, ok, tt.sheet, tt.region, tt.ok)
		}
	}
}
