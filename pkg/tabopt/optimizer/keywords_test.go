package optimizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywords_Add(t *testing.T) {
	kw := Keywords{}
	kw.Add(CategoryAspect, " Aspekt ", "")
	kw.Add(CategoryDetailPair, "ASPEKT")

	if kw["aspekt"] != CategoryAspect|CategoryDetailPair {
		t.Errorf("categories = %b, expected aspect|detail_pair", kw["aspekt"])
	}
	if len(kw) != 1 {
		t.Errorf("expected 1 keyword, got %d", len(kw))
	}
}

func TestKeywords_Terms(t *testing.T) {
	kw := Keywords{}
	kw.Add(CategoryPricing, "price", "cost")
	kw.Add(CategoryDetail, "value")

	if got := kw.Terms(CategoryPricing); !reflect.DeepEqual(got, []string{"cost", "price"}) {
		t.Errorf("Terms(pricing) = %q", got)
	}
	if got := kw.Terms(CategoryAspect); got != nil {
		t.Errorf("Terms(aspect) = %q, expected nil", got)
	}
}

func TestLoadKeywords(t *testing.T) {
	base := DefaultKeywords()

	extended, err := LoadKeywords(strings.NewReader(`{"pricing": ["Tariff"], "detail": ["merknad"]}`), base)
	if err != nil {
		t.Fatalf("LoadKeywords failed: %v", err)
	}
	if extended["tariff"]&CategoryPricing == 0 || extended["merknad"]&CategoryDetail == 0 {
		t.Error("expected loaded keywords to be added")
	}
	if extended["price"]&CategoryPricing == 0 {
		t.Error("expected defaults to be kept")
	}
	if _, ok := base["tariff"]; ok {
		t.Error("expected base to be left unmodified")
	}

	replaced, err := LoadKeywords(strings.NewReader(`{"replace": true, "pricing": ["tariff"]}`), base)
	if err != nil {
		t.Fatalf("LoadKeywords failed: %v", err)
	}
	if len(replaced) != 1 {
		t.Errorf("expected only the loaded keyword, got %d", len(replaced))
	}

	if _, err := LoadKeywords(strings.NewReader(`{"pricing": "tariff"}`), base); err == nil {
		t.Error("expected error for malformed keyword file")
	}
}
