// Package formsense classifies HTML form fields into semantic types
// (name, email, phone, address parts) by matching field labels and
// names against versioned, per-language pattern rule sets.
//
//	c := formsense.New()
//	results, _ := c.ExtractFields(htmlString, "en")
//	for _, r := range results {
//	    fmt.Println(r.FieldTypes) // {"email": "EMAIL_ADDRESS", ...}
//	}
package formsense

import (
	"fmt"

	"github.com/formsense/formsense/classifier"
	"github.com/formsense/formsense/internal/htmlutil"
	"github.com/formsense/formsense/pattern"
)

// Classifier classifies the fields of every form on a page.
type Classifier struct {
	provider *pattern.Provider
	fc       *classifier.Classifier
}

// FormResult holds the classification of a single form: field name to
// proposed type, with the winning pattern score per field. Fields no
// rule could classify are absent.
type FormResult struct {
	FieldTypes map[string]string  `json:"field_types"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// New returns a classifier backed by the process-default pattern
// provider, which carries the embedded rule set.
func New() *Classifier {
	return NewWithProvider(pattern.Default())
}

// NewWithProvider returns a classifier backed by the given provider.
// Tests and embedders construct their own provider instead of touching
// the process default.
func NewWithProvider(p *pattern.Provider) *Classifier {
	return &Classifier{provider: p, fc: classifier.New(p)}
}

// LoadRules installs a rule set file into the classifier's provider.
// A file whose version is not newer than the loaded one is ignored,
// per the store's version policy.
func (c *Classifier) LoadRules(path string) error {
	rules, version, err := pattern.LoadRuleFile(path)
	if err != nil {
		return fmt.Errorf("formsense: %w", err)
	}
	c.provider.SetPatterns(rules, version, false)
	return nil
}

// RuleVersion returns the version of the rule set currently in use.
func (c *Classifier) RuleVersion() int {
	return c.provider.Version()
}

// SetMinScore overrides the minimum pattern score accepted as a match.
func (c *Classifier) SetMinScore(min float64) {
	c.fc.MinScore = min
}

// ExtractFields classifies the fields of every form in the HTML. The
// result has one entry per form in document order; pages without forms
// yield an empty slice, not an error.
func (c *Classifier) ExtractFields(html, pageLanguage string) ([]FormResult, error) {
	doc, err := htmlutil.LoadHTMLString(html)
	if err != nil {
		return nil, fmt.Errorf("formsense: %w", err)
	}

	forms := htmlutil.GetForms(doc)
	out := make([]FormResult, 0, len(forms))
	for _, form := range forms {
		cands := c.fc.ClassifyForm(form, pageLanguage)
		r := FormResult{
			FieldTypes: make(map[string]string, len(cands)),
			Scores:     make(map[string]float64, len(cands)),
		}
		for _, cand := range cands {
			r.FieldTypes[cand.FieldName] = cand.Type
			r.Scores[cand.FieldName] = cand.Score
		}
		out = append(out, r)
	}
	return out, nil
}
