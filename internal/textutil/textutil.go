// Package textutil provides text normalization for field classification.
package textutil

import (
	"regexp"
	"strings"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize extracts word tokens from text (Unicode-aware).
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// Normalize lowercases text, normalizes whitespace and trims it.
func Normalize(text string) string {
	return strings.TrimSpace(NormalizeWhitespaces(strings.ToLower(text)))
}
