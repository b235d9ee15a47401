// Package pattern stores versioned field-matching rule sets and serves
// per-type, per-language pattern lookups for form field classification.
package pattern

import (
	"regexp"
	"slices"
)

// Attribute selects which textual attributes of a field a pattern is
// matched against.
type Attribute uint8

const (
	// AttrLabel matches against the field's label text (including an
	// inferred label and the placeholder).
	AttrLabel Attribute = 1 << iota
	// AttrName matches against the field's name and id attributes.
	AttrName
)

// Pattern is a single matching rule: a positive regex that must match,
// an optional negative regex that must not, a score used to rank
// competing matches, and applicability flags.
type Pattern struct {
	Positive   string
	Negative   string
	Score      float64
	Attributes Attribute
	InputTypes []string // empty = any input type

	pos *regexp.Regexp
	neg *regexp.Regexp
}

// Compile returns a copy of p with its regexes compiled case-insensitively.
func Compile(p Pattern) (Pattern, error) {
	pos, err := regexp.Compile("(?i)" + p.Positive)
	if err != nil {
		return Pattern{}, err
	}
	p.pos = pos
	if p.Negative != "" {
		neg, err := regexp.Compile("(?i)" + p.Negative)
		if err != nil {
			return Pattern{}, err
		}
		p.neg = neg
	}
	return p, nil
}

// Match reports whether the pattern accepts the given text: the positive
// regex matches and the negative regex (if any) does not.
func (p Pattern) Match(text string) bool {
	if p.pos == nil {
		return false
	}
	if !p.pos.MatchString(text) {
		return false
	}
	return p.neg == nil || !p.neg.MatchString(text)
}

// AppliesTo reports whether the pattern may be matched against a field
// of the given input type ("text", "email", ...). An empty allowlist
// accepts every type.
func (p Pattern) AppliesTo(inputType string) bool {
	if len(p.InputTypes) == 0 {
		return true
	}
	return slices.Contains(p.InputTypes, inputType)
}
