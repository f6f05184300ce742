package optimizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalize trims s and lowercases it in NFC form so that composed and
// decomposed spellings of "å", "ä" and "ö" compare equal.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers keep state and must not be shared.
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// normalizedHeaders returns the normalized headers of a table in their original order.
func normalizedHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = normalize(h)
	}
	return out
}

// containsAny reports whether s contains any of terms.
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// wordTermLen is the rune length below which a keyword only matches as a whole word.
const wordTermLen = 5

// containsTerm reports whether s contains any of terms. Terms shorter than
// wordTermLen must not be part of a longer word, so "fee" matches
// "monthly fee" but not "coffee".
func containsTerm(s string, terms []string) bool {
	for _, term := range terms {
		if utf8.RuneCountInString(term) >= wordTermLen {
			if strings.Contains(s, term) {
				return true
			}
			continue
		}
		if containsWord(s, term) {
			return true
		}
	}
	return false
}

// containsWord reports whether term occurs in s without a letter directly
// before or after it. Edges of term that are not letters need no boundary.
func containsWord(s, term string) bool {
	if term == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)

	for off := 0; off < len(s); {
		i := strings.Index(s[off:], term)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(term)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (!unicode.IsLetter(first) || start == 0 || !unicode.IsLetter(before)) &&
			(!unicode.IsLetter(last) || end == len(s) || !unicode.IsLetter(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}
	return false
}
