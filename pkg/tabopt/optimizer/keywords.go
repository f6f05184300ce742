// Package optimizer detects similar or low-value tables in an extracted table list
// and produces merge and removal suggestions.
package optimizer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Category is a bit set of classifier roles a keyword plays.
type Category uint8

const (
	// CategoryPricing marks price, plan and currency terms.
	CategoryPricing Category = 1 << iota
	// CategoryDetailHeader marks terms that, as a whole header, identify a detail table.
	CategoryDetailHeader
	// CategoryAspect marks "aspect"-like header tokens.
	CategoryAspect
	// CategoryDetail marks "detail"-like header tokens.
	CategoryDetail
	// CategoryDetailPair marks header tokens that put a table in the aspect/detail fuzzy group.
	CategoryDetailPair
)

// Keywords maps a lowercased keyword to its categories.
type Keywords map[string]Category

// KeywordFile is the JSON layout accepted by LoadKeywords.
type KeywordFile struct {
	// Replace discards the defaults instead of extending them.
	Replace      bool     `json:"replace,omitempty"`
	Pricing      []string `json:"pricing,omitempty"`
	DetailHeader []string `json:"detail_header,omitempty"`
	Aspect       []string `json:"aspect,omitempty"`
	Detail       []string `json:"detail,omitempty"`
	DetailPair   []string `json:"detail_pair,omitempty"`
}

// DefaultKeywords returns the built-in English/Swedish keyword table.
func DefaultKeywords() Keywords {
	kw := Keywords{}
	kw.Add(CategoryPricing,
		"price", "prices", "pricing", "pris", "priser", "prislista",
		"cost", "costs", "kostnad", "kostar",
		"tier", "plan", "plans", "paket", "package",
		"currency", "valuta", "fee", "avgift", "månadsavgift",
		"subscription", "abonnemang",
		"/month", "/mo", "/mån", "per month", "per månad", "monthly",
	)
	kw.Add(CategoryDetailHeader,
		"aspekt", "aspect", "egenskap", "property", "attribut", "attribute",
		"parameter", "fält", "field", "nyckel", "key",
		"specifikation", "specification", "detaljer", "details",
	)
	kw.Add(CategoryAspect,
		"aspekt", "aspect", "egenskap", "property", "attribut", "attribute",
		"kategori", "category", "parameter", "område",
	)
	kw.Add(CategoryDetail,
		"detalj", "detail", "värde", "value", "beskrivning", "description", "info",
	)
	kw.Add(CategoryDetailPair, "aspekt", "detalj", "aspect", "detail")
	return kw
}

// Add registers terms under category c, keeping any categories they already have.
func (k Keywords) Add(c Category, terms ...string) {
	for _, term := range terms {
		term = normalize(term)
		if term == "" {
			continue
		}
		k[term] |= c
	}
}

// Terms returns the sorted keywords that carry category c.
func (k Keywords) Terms(c Category) []string {
	var out []string
	for term, cats := range k {
		if cats&c != 0 {
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of k.
func (k Keywords) Clone() Keywords {
	out := make(Keywords, len(k))
	for term, c := range k {
		out[term] = c
	}
	return out
}

// LoadKeywords reads a KeywordFile from r and applies it on top of base.
// base is not modified.
func LoadKeywords(r io.Reader, base Keywords) (Keywords, error) {
	var file KeywordFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}

	kw := Keywords{}
	if !file.Replace {
		kw = base.Clone()
	}
	kw.Add(CategoryPricing, file.Pricing...)
	kw.Add(CategoryDetailHeader, file.DetailHeader...)
	kw.Add(CategoryAspect, file.Aspect...)
	kw.Add(CategoryDetail, file.Detail...)
	kw.Add(CategoryDetailPair, file.DetailPair...)
	return kw, nil
}

// LoadKeywordsFile reads a keyword file from path and applies it on top of base.
func LoadKeywordsFile(path string, base Keywords) (Keywords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadKeywords(f, base)
}
