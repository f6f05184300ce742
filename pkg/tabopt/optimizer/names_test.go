package optimizer

import (
	"testing"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Invoice (P12)", "invoice"},
		{"Invoice (p3) ", "invoice"},
		{"Summary Page 5", "summary"},
		{"Summary - page 6", "summary"},
		{"Prislista sida 2", "prislista"},
		{"Report (Page 4)", "report"},
		{"Specs p. 7", "specs"},
		{"  Plain Name ", "plain name"},
		{"Top 10", "top 10"},
		{"", ""},
	}

	for _, tt := range tests {
		result := baseName(tt.name)
		if result != tt.expected {
			t.Errorf("baseName(%q) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected string
	}{
		{"Prices (P2)", 0, "Prices"},
		{"Prices (P2) extra", 0, "Prices (P2) extra"},
		{"Exactly twenty chars", 0, "Exactly twenty chars"},
		{"Specifikationsöversikt för 2024 (P1)", 0, "Specifikationsöversi"},
		{"", 4, "Table 5"},
	}

	for _, tt := range tests {
		result := sourceLabel(models.Table{Name: tt.name}, tt.index)
		if result != tt.expected {
			t.Errorf("sourceLabel(%q) = %q, expected %q", tt.name, result, tt.expected)
		}
	}
}
