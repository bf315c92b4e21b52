// Package wordlist provides word normalization helpers.
package wordlist

import "strings"

// Normalize trims surrounding whitespace and reports whether the result is a
// usable word. Case is preserved: "Serendipity" and "serendipity" are two
// different words. Comment lines (leading #) are rejected.
func Normalize(raw string) (string, bool) {
	word := strings.TrimSpace(raw)
	if word == "" || strings.HasPrefix(word, "#") {
		return "", false
	}
	return word, true
}

// NormalizeAll applies Normalize to every entry, dropping unusable ones and
// duplicates while preserving the original order.
func NormalizeAll(raw []string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, r := range raw {
		word, ok := Normalize(r)
		if !ok || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words
}
