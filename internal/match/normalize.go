package match

import (
	"strings"
	"unicode"
)

// strippedSuffixes are removed by NormalizeIdentWithSuffixStrip, longest
// first so that "ids" wins over "id".
var strippedSuffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// NormalizeIdent folds an identifier into a comparable form: CamelCase and
// separated words are joined and lower-cased, so "OrderID", "order_id" and
// "order-id" all become "orderid".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizeIdentWithSuffixStrip normalizes s and drops one trailing
// identifier suffix, unless nothing would remain.
func NormalizeIdentWithSuffixStrip(s string) string {
	n := NormalizeIdent(s)

	for _, suffix := range strippedSuffixes {
		if rest, ok := strings.CutSuffix(n, suffix); ok && rest != "" {
			return rest
		}
	}

	return n
}

// TokenizeIdent splits an identifier into lower-case words.
func TokenizeIdent(s string) []string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return words
}

// splitWords splits on separators and CamelCase boundaries, keeping
// acronyms together: "getHTTPResponse" gives get, HTTP, Response.
func splitWords(s string) []string {
	runes := []rune(s)

	var (
		words []string
		start = -1
	)

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && isBoundary(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return words
}

// isBoundary reports whether a new word starts at runes[i]: a lower to
// upper transition, or the last capital of an acronym followed by a
// lower-case letter.
func isBoundary(runes []rune, i int) bool {
	if i == 0 || !unicode.IsUpper(runes[i]) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
