package pattern

import (
	"slices"
)

// RuleSet maps field type name -> page language -> patterns. The empty
// language key means "any language".
type RuleSet = map[string]map[string][]Pattern

// Store holds one versioned rule set. It is not safe for concurrent
// mutation; callers are expected to load and query it from a single
// goroutine. Lookups return copies, so a slice handed out before a
// version swap stays valid afterwards.
type Store struct {
	patterns RuleSet
	version  int
	loaded   bool
}

// NewStore returns an empty store. A freshly created store reports
// version 0 and serves no patterns until SetPatterns succeeds.
func NewStore() *Store {
	return &Store{}
}

// SetPatterns replaces the full rule set if version is strictly newer
// than the stored one, or equal with overwriteEqual set, or if nothing
// has been loaded yet. A stale push is a silent no-op; the return value
// reports whether the replacement happened. Redundant configuration
// pushes are expected, so a no-op is not an error.
func (s *Store) SetPatterns(patterns RuleSet, version int, overwriteEqual bool) bool {
	if s.loaded {
		if version < s.version {
			return false
		}
		if version == s.version && !overwriteEqual {
			return false
		}
	}
	s.patterns = patterns
	s.version = version
	s.loaded = true
	return true
}

// Version returns the version of the currently loaded rule set,
// or 0 if none has been loaded.
func (s *Store) Version() int {
	return s.version
}

// PatternsFor returns the patterns registered for exactly the
// (fieldType, lang) key. There is no fallback to the "any language"
// bucket: an unknown language yields nil even when other languages
// carry patterns for the type.
func (s *Store) PatternsFor(fieldType, lang string) []Pattern {
	byLang, ok := s.patterns[fieldType]
	if !ok {
		return nil
	}
	return slices.Clone(byLang[lang])
}

// AllPatternsFor returns the union of every language bucket for the
// given type, in sorted language-key order.
func (s *Store) AllPatternsFor(fieldType string) []Pattern {
	byLang, ok := s.patterns[fieldType]
	if !ok {
		return nil
	}
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	var all []Pattern
	for _, lang := range langs {
		all = append(all, byLang[lang]...)
	}
	return all
}

// Types returns the field type names present in the loaded rule set,
// sorted.
func (s *Store) Types() []string {
	types := make([]string, 0, len(s.patterns))
	for tp := range s.patterns {
		types = append(types, tp)
	}
	slices.Sort(types)
	return types
}
