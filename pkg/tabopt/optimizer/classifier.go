package optimizer

import (
	"regexp"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// pricingSampleRows is the number of leading data rows scanned for pricing keywords.
const pricingSampleRows = 3

// currencyPatterns match currency amounts in any cell.
var currencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s?\d[\d,]*(?:\.\d+)?`),
	regexp.MustCompile(`[€£]\s?\d`),
	regexp.MustCompile(`(?i)\d[\d\s.,]*\s?(?:kr|sek|eur|usd|€|£)(?:[^\p{L}]|$)`),
	regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:sek|kr)\.?\s?\d`),
	regexp.MustCompile(`(?i)\d[\d\s.,]*\s?(?:kr\s?)?/\s?(?:mån|month|mo)`),
}

// Classifier labels tables as pricing-like or detail-like using a keyword table.
type Classifier struct {
	pricing      []string
	detailHeader map[string]bool
	aspect       []string
	detail       []string
}

// NewClassifier creates a classifier over kw.
func NewClassifier(kw Keywords) *Classifier {
	c := &Classifier{
		pricing:      kw.Terms(CategoryPricing),
		detailHeader: make(map[string]bool),
		aspect:       kw.Terms(CategoryAspect),
		detail:       kw.Terms(CategoryDetail),
	}
	for _, term := range kw.Terms(CategoryDetailHeader) {
		c.detailHeader[term] = true
	}
	return c
}

// IsPricingTable reports whether the headers or the first data rows mention a
// pricing keyword, or any cell holds a currency amount.
// Short keywords such as "fee" or "plan" only match whole words.
func (c *Classifier) IsPricingTable(t models.Table) bool {
	for _, h := range normalizedHeaders(t.Headers) {
		if containsTerm(h, c.pricing) {
			return true
		}
	}

	for r, row := range t.Rows {
		for _, cell := range row {
			if cell == nil || *cell == "" {
				continue
			}
			if r < pricingSampleRows && containsTerm(normalize(*cell), c.pricing) {
				return true
			}
			if matchesCurrency(*cell) {
				return true
			}
		}
	}
	return false
}

// IsDetailTable reports whether t is a two-column aspect/detail table.
func (c *Classifier) IsDetailTable(t models.Table) bool {
	if len(t.Headers) != 2 {
		return false
	}

	headers := normalizedHeaders(t.Headers)
	hasAspect, hasDetail := false, false
	for _, h := range headers {
		if c.detailHeader[h] {
			return true
		}
		if containsAny(h, c.aspect) {
			hasAspect = true
		}
		if containsAny(h, c.detail) {
			hasDetail = true
		}
	}
	return hasAspect && hasDetail
}

func matchesCurrency(s string) bool {
	for _, re := range currencyPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
