package optimizer

import (
	"testing"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

func TestExactSignature(t *testing.T) {
	sig := ExactSignature(table("", []string{"Date", "Description", "Amount"}))
	if sig != "3:amount|date|description" {
		t.Errorf("ExactSignature = %q, expected %q", sig, "3:amount|date|description")
	}
}

func TestExactSignature_Equivalence(t *testing.T) {
	base := []string{"Date", "Description", "Amount"}
	tests := []struct {
		headers []string
		same    bool
	}{
		{[]string{"Amount", "Date", "Description"}, true},
		{[]string{" DATE ", "description", "amount "}, true},
		{[]string{"Date", "Description", "Total"}, false},
		{[]string{"Date", "Description"}, false},
		{[]string{"Date", "Description", "Amount", "Balance"}, false},
		{[]string{"Date", "Desc ription", "Amount"}, false},
	}

	want := ExactSignature(table("", base))
	for _, tt := range tests {
		got := ExactSignature(table("", tt.headers))
		if (got == want) != tt.same {
			t.Errorf("ExactSignature(%q) = %q, base %q, expected same=%v", tt.headers, got, want, tt.same)
		}
	}
}

func TestExactSignature_SeparatorInHeader(t *testing.T) {
	tests := []struct {
		a, b []string
	}{
		{[]string{"a|b", "c"}, []string{"a", "b|c"}},
		{[]string{`a\`, "b"}, []string{"a", `\b`}},
		{[]string{`a\|b`, "c"}, []string{`a\`, "b|c"}},
	}

	for _, tt := range tests {
		sa, sb := ExactSignature(table("", tt.a)), ExactSignature(table("", tt.b))
		if sa == sb {
			t.Errorf("ExactSignature(%q) = ExactSignature(%q) = %q, expected different", tt.a, tt.b, sa)
		}
	}

	if sig := ExactSignature(table("", []string{"In|Out", "Date"})); sig != `2:date|in\|out` {
		t.Errorf("ExactSignature = %q, expected %q", sig, `2:date|in\|out`)
	}
}

func TestExactSignature_UnicodeForms(t *testing.T) {
	composed := table("", []string{"Värde", "Fält"})
	decomposed := table("", []string{"Va\u0308rde", "FA\u0308LT"})
	if ExactSignature(composed) != ExactSignature(decomposed) {
		t.Errorf("expected composed and decomposed headers to match: %q vs %q",
			ExactSignature(composed), ExactSignature(decomposed))
	}
}

func TestFuzzySignature(t *testing.T) {
	kw := DefaultKeywords()
	tests := []struct {
		headers  []string
		expected string
	}{
		{[]string{"Aspekt", "Detalj"}, FuzzyDetailPair},
		{[]string{"Product aspect", "Notes", "Owner"}, FuzzyDetailPair},
		{[]string{" DETAILS "}, FuzzyDetailPair},
		{[]string{"Name", "Age"}, FuzzyKeyValue},
		{[]string{"Name"}, FuzzyNarrow},
		{[]string{}, FuzzyNarrow},
		{[]string{"A", "B", "C"}, FuzzyMedium},
		{[]string{"A", "B", "C", "D"}, FuzzyMedium},
		{[]string{"A", "B", "C", "D", "E"}, FuzzyWide},
	}

	for _, tt := range tests {
		result := FuzzySignature(models.Table{Headers: tt.headers}, kw)
		if result != tt.expected {
			t.Errorf("FuzzySignature(%q) = %q, expected %q", tt.headers, result, tt.expected)
		}
	}
}
