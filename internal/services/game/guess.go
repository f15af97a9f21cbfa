package game

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeGuess trims, composes and case folds text for comparison
func normalizeGuess(text string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(text)))
}

// matchesWord reports whether a guess names the word. Nothing matches an empty word.
func matchesWord(guess, word string) bool {
	if word == "" {
		return false
	}
	return normalizeGuess(guess) == normalizeGuess(word)
}
