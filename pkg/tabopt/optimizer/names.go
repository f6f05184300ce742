package optimizer

import (
	"regexp"
	"strings"

	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
)

// sourceLabelMax is the maximum length, in runes, of a merged row's source label.
const sourceLabelMax = 20

var (
	// pageTag matches the " (P3)" suffix the extractor appends to table names.
	pageTag = regexp.MustCompile(` \(P\d+\)$`)
	// pageSuffixes match page-number suffixes stripped for name grouping.
	pageSuffixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*\(p\d+\)\s*$`),
		regexp.MustCompile(`(?i)[\s\-–:,]*\(?\s*(?:page|sida|p\.)\s*\d+\s*\)?\s*$`),
	}
)

// sourceLabel derives the short label written into the "Source" column of a merged table.
func sourceLabel(t models.Table, i int) string {
	label := pageTag.ReplaceAllString(t.DisplayName(i), "")
	runes := []rune(label)
	if len(runes) > sourceLabelMax {
		label = string(runes[:sourceLabelMax])
	}
	return label
}

// baseName strips page-number suffixes from a table name and normalizes it.
func baseName(name string) string {
	for _, re := range pageSuffixes {
		name = re.ReplaceAllString(name, "")
	}
	return normalize(strings.TrimSpace(name))
}
