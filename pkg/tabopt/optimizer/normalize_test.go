package optimizer

import "testing"

func TestContainsTerm(t *testing.T) {
	tests := []struct {
		s        string
		terms    []string
		expected bool
	}{
		{"monthly fee", []string{"fee"}, true},
		{"coffee", []string{"fee"}, false},
		{"coffee fee", []string{"fee"}, true},
		{"feedback", []string{"fee"}, false},
		{"fee-based", []string{"fee"}, true},
		{"explanation", []string{"plan"}, false},
		{"plan", []string{"plan"}, true},
		{"$5/model", []string{"/mo"}, false},
		{"$5/mo", []string{"/mo"}, true},
		{"5/mo.", []string{"/mo"}, true},
		{"totalpris", []string{"pris"}, false},
		{"pris (sek)", []string{"pris"}, true},
		{"priceless", []string{"price"}, true},
		{"månadsavgift", []string{"avgift"}, true},
		{"", []string{"fee"}, false},
	}

	for _, tt := range tests {
		if result := containsTerm(tt.s, tt.terms); result != tt.expected {
			t.Errorf("containsTerm(%q, %q) = %v, expected %v", tt.s, tt.terms, result, tt.expected)
		}
	}
}
