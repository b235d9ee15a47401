// Package classifier proposes semantic field types for form controls by
// matching their textual attributes against a pattern rule set.
package classifier

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/formsense/formsense/pattern"
)

// Candidate is one proposed classification: a field (by name), the
// proposed type and the score of the winning pattern. Candidates live
// only for the duration of one parsing pass.
type Candidate struct {
	FieldName string
	Type      string
	Score     float64
}

// DefaultMinScore is the threshold a pattern score must reach for a
// match to produce a candidate.
const DefaultMinScore = 0.5

// Classifier matches form fields against the patterns served by a
// pattern.Provider. Rules run in a fixed priority order and the first
// rule that commits a match wins; there is no backtracking across
// rules.
type Classifier struct {
	// MinScore is the minimum pattern score accepted as a match.
	MinScore float64

	provider *pattern.Provider
}

// New returns a classifier backed by the given provider.
func New(provider *pattern.Provider) *Classifier {
	return &Classifier{MinScore: DefaultMinScore, provider: provider}
}

// ClassifyForm extracts the fields of a form and classifies them.
func (c *Classifier) ClassifyForm(form *goquery.Selection, pageLanguage string) []Candidate {
	return c.ClassifyFields(FieldsFromForm(form), pageLanguage)
}

// ClassifyFields runs the rule chain over a field sequence. A field no
// rule claims is skipped and receives no candidate; that is expected
// degradation, not a failure.
func (c *Classifier) ClassifyFields(fields []Field, pageLanguage string) []Candidate {
	sc := NewScanner(fields)
	var out []Candidate
	for !sc.Done() {
		matched := false
		for _, rule := range fieldRules {
			if cands := rule(c, sc, pageLanguage); len(cands) > 0 {
				out = append(out, cands...)
				matched = true
				break
			}
		}
		if !matched {
			sc.Advance()
		}
	}
	return out
}

// match tests one field against the patterns for fieldType and returns
// the best applicable score at or above MinScore.
func (c *Classifier) match(f *Field, fieldType, pageLanguage string) (float64, bool) {
	var best float64
	found := false
	for _, p := range c.provider.MatchPatterns(fieldType, pageLanguage) {
		if !p.AppliesTo(f.Type) {
			continue
		}
		ok := false
		if p.Attributes&pattern.AttrLabel != 0 && p.Match(f.labelText()) {
			ok = true
		}
		if !ok && p.Attributes&pattern.AttrName != 0 && p.Match(f.nameText()) {
			ok = true
		}
		if ok && (!found || p.Score > best) {
			best = p.Score
			found = true
		}
	}
	if !found || best < c.MinScore {
		return 0, false
	}
	return best, true
}
