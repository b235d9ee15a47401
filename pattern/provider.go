package pattern

import "sync"

// LookupMode selects how MatchPatterns treats the page language. The
// mode is fixed when the Provider is constructed.
type LookupMode int

const (
	// LanguageAgnostic ignores the page language and serves the union
	// of every language bucket for the requested type.
	LanguageAgnostic LookupMode = iota
	// LanguageStrict serves only the exact (type, language) bucket.
	// A language with no bucket yields no patterns, even when other
	// languages carry patterns for the type.
	LanguageStrict
)

// Provider wraps one Store and answers pattern lookups for the forms
// parser. Like the Store it wraps, it is meant to be mutated from a
// single goroutine.
type Provider struct {
	mode  LookupMode
	store *Store
}

// NewProvider returns a Provider with an empty store and the given
// lookup mode.
func NewProvider(mode LookupMode) *Provider {
	return &Provider{mode: mode, store: NewStore()}
}

// SetPatterns installs a rule set into the underlying store, subject to
// the store's version policy.
func (p *Provider) SetPatterns(patterns RuleSet, version int, overwriteEqual bool) bool {
	return p.store.SetPatterns(patterns, version, overwriteEqual)
}

// Version returns the version of the loaded rule set.
func (p *Provider) Version() int {
	return p.store.Version()
}

// Types returns the field type names in the loaded rule set, sorted.
func (p *Provider) Types() []string {
	return p.store.Types()
}

// MatchPatterns returns the patterns to try for a field type on a page
// in the given language, per the provider's lookup mode. Absent data
// yields an empty slice, never an error.
func (p *Provider) MatchPatterns(fieldType, pageLanguage string) []Pattern {
	if p.mode == LanguageStrict {
		return p.store.PatternsFor(fieldType, pageLanguage)
	}
	return p.store.AllPatternsFor(fieldType)
}

// AllPatternsForType returns the union of every language's patterns for
// the type, regardless of the provider's lookup mode. Legacy callers
// and fallback paths use this directly.
func (p *Provider) AllPatternsForType(fieldType string) []Pattern {
	return p.store.AllPatternsFor(fieldType)
}

var (
	defaultMu       sync.Mutex
	defaultProvider *Provider
	defaultOverride *Provider
)

// Default returns the process-wide provider, constructing it and
// loading the embedded rule set on first use. If a test override is
// installed, the override is returned instead.
func Default() *Provider {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultOverride != nil {
		return defaultOverride
	}
	if defaultProvider == nil {
		p := NewProvider(LanguageAgnostic)
		rules, version := DefaultRuleSet()
		p.SetPatterns(rules, version, false)
		defaultProvider = p
	}
	return defaultProvider
}

// SetDefaultForTesting installs p as the provider returned by Default.
// Must be paired with ResetDefault so state does not leak across tests.
// Production code must not call this.
func SetDefaultForTesting(p *Provider) {
	if p == nil {
		panic("pattern: SetDefaultForTesting called with nil provider")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOverride = p
}

// ResetDefault clears any test override and the lazily built default,
// so the next Default call constructs a fresh provider.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOverride = nil
	defaultProvider = nil
}
