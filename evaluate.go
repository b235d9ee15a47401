package formsense

import (
	"fmt"
	"sort"

	"github.com/formsense/formsense/internal/storage"
)

// EvalConfig controls evaluation over an annotated corpus.
type EvalConfig struct {
	// Lang overrides the per-page language recorded in the corpus.
	Lang string
	// Verbose keeps per-form mismatch details in the result.
	Verbose bool
}

// Mismatch records one wrongly classified field, for verbose reports.
type Mismatch struct {
	URL       string
	FieldName string
	Want      string
	Got       string
}

// EvalResult aggregates classification accuracy over a corpus.
type EvalResult struct {
	FieldCorrect  int
	FieldTotal    int
	FieldAccuracy float64

	// A sequence is correct when every annotated field of a form got
	// the expected type.
	SequenceCorrect  int
	SequenceTotal    int
	SequenceAccuracy float64

	// Short type name -> (correct, total) over expected types.
	TypeCorrect map[string]int
	TypeTotal   map[string]int

	// eTLD+1 domain -> (correct, total).
	DomainCorrect map[string]int
	DomainTotal   map[string]int

	Mismatches []Mismatch
}

// Domains returns the evaluated domains, sorted.
func (r *EvalResult) Domains() []string {
	domains := make([]string, 0, len(r.DomainTotal))
	for d := range r.DomainTotal {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Types returns the evaluated short type names, sorted.
func (r *EvalResult) Types() []string {
	types := make([]string, 0, len(r.TypeTotal))
	for tp := range r.TypeTotal {
		types = append(types, tp)
	}
	sort.Strings(types)
	return types
}

// Evaluate classifies every annotated form in the data folder and
// compares the proposals against the expected field types.
func (c *Classifier) Evaluate(dataFolder string, cfg *EvalConfig) (*EvalResult, error) {
	if cfg == nil {
		cfg = &EvalConfig{}
	}

	store := storage.NewStorage(dataFolder)
	anns, err := store.IterAnnotations(storage.DefaultIterOptions())
	if err != nil {
		return nil, fmt.Errorf("formsense: %w", err)
	}

	result := &EvalResult{
		TypeCorrect:   make(map[string]int),
		TypeTotal:     make(map[string]int),
		DomainCorrect: make(map[string]int),
		DomainTotal:   make(map[string]int),
	}

	for _, ann := range anns {
		lang := ann.PageLanguage
		if cfg.Lang != "" {
			lang = cfg.Lang
		}

		forms, err := c.ExtractFields(ann.FormHTML, lang)
		if err != nil || len(forms) == 0 {
			continue
		}
		predicted := forms[0].FieldTypes

		domain := storage.GetDomain(ann.URL)
		allCorrect := true
		for name, want := range ann.FieldTypes {
			got := ann.Schema.Short(predicted[name])
			correct := got == want

			result.FieldTotal++
			result.TypeTotal[want]++
			result.DomainTotal[domain]++
			if correct {
				result.FieldCorrect++
				result.TypeCorrect[want]++
				result.DomainCorrect[domain]++
			} else {
				allCorrect = false
				if cfg.Verbose {
					result.Mismatches = append(result.Mismatches, Mismatch{
						URL:       ann.URL,
						FieldName: name,
						Want:      want,
						Got:       got,
					})
				}
			}
		}

		if ann.FieldsAnnotated {
			result.SequenceTotal++
			if allCorrect {
				result.SequenceCorrect++
			}
		}
	}

	if result.FieldTotal > 0 {
		result.FieldAccuracy = float64(result.FieldCorrect) / float64(result.FieldTotal)
	}
	if result.SequenceTotal > 0 {
		result.SequenceAccuracy = float64(result.SequenceCorrect) / float64(result.SequenceTotal)
	}
	return result, nil
}
