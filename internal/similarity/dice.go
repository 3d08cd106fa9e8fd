// Package similarity scores how alike two titles are.
package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Compare returns the Sørensen-Dice coefficient over the character bigrams
// of a and b, ignoring whitespace. The result is in [0,1].
func Compare(a, b string) float64 {
	first := stripSpace(a)
	second := stripSpace(b)

	if string(first) == string(second) {
		return 1
	}
	if len(first) < 2 || len(second) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(first)-1)
	for i := 0; i < len(first)-1; i++ {
		bigrams[[2]rune{first[i], first[i+1]}]++
	}

	intersection := 0
	for i := 0; i < len(second)-1; i++ {
		key := [2]rune{second[i], second[i+1]}
		if bigrams[key] > 0 {
			bigrams[key]--
			intersection++
		}
	}

	return 2 * float64(intersection) / float64(len(first)+len(second)-2)
}

// Titles compares two titles after folding both to lower case.
func Titles(a, b string) float64 {
	lower := cases.Lower(language.Und)
	return Compare(lower.String(a), lower.String(b))
}

func stripSpace(s string) []rune {
	return []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
