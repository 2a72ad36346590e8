package logic

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeInput lowercases, folds diacritics, drops everything outside
// [a-z0-9] and whitespace, then collapses and trims whitespace. Idempotent.
func NormalizeInput(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// aliasKey is the forward alias-table key for an input: normalized, no spaces
func aliasKey(s string) string {
	return strings.ReplaceAll(NormalizeInput(s), " ", "")
}

// Jaccard is intersection-over-union of the sets of unique characters in a
// and b. Two empty strings have similarity 0.
func Jaccard(a, b string) float64 {
	setA := charSet(a)
	setB := charSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	inter := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
