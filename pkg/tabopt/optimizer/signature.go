package optimizer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// Fuzzy signatures.
const (
	FuzzyDetailPair = "aspekt-detalj"
	FuzzyKeyValue   = "2col-keyvalue"
	FuzzyNarrow     = "2col"
	FuzzyMedium     = "3-4col"
	FuzzyWide       = "5+col"
)

// headerEscaper escapes the separator inside header text.
var headerEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

// ExactSignature returns the column count followed by the sorted, trimmed and
// lowercased headers, e.g. "3:amount|date|description".
// Header order does not affect the signature. A "|" inside a header is written as "\|".
func ExactSignature(t models.Table) string {
	headers := normalizedHeaders(t.Headers)
	sort.Strings(headers)
	for i, h := range headers {
		headers[i] = headerEscaper.Replace(h)
	}
	return strconv.Itoa(len(t.Headers)) + ":" + strings.Join(headers, "|")
}

// FuzzySignature returns a coarse structural key for t.
// Headers containing a detail-pair keyword take precedence over column count.
func FuzzySignature(t models.Table, kw Keywords) string {
	pair := kw.Terms(CategoryDetailPair)
	for _, h := range normalizedHeaders(t.Headers) {
		if containsAny(h, pair) {
			return FuzzyDetailPair
		}
	}

	n := len(t.Headers)
	switch {
	case n == 2:
		return FuzzyKeyValue
	case n < 2:
		return FuzzyNarrow
	case n <= 4:
		return FuzzyMedium
	default:
		return FuzzyWide
	}
}
