package pattern

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed rules.json
var defaultRulesJSON []byte

// ruleSetJSON is the on-disk structure of a rule set file.
type ruleSetJSON struct {
	Version int                                 `json:"version"`
	Types   map[string]map[string][]patternJSON `json:"types"`
}

type patternJSON struct {
	Positive   string   `json:"positive"`
	Negative   string   `json:"negative,omitempty"`
	Score      float64  `json:"score"`
	Attributes []string `json:"attributes"`
	InputTypes []string `json:"input_types,omitempty"`
}

// ParseRuleSet parses and compiles a serialized rule set. The result is
// ready to hand to Store.SetPatterns; raw bytes are never re-parsed per
// lookup.
func ParseRuleSet(data []byte) (RuleSet, int, error) {
	var raw ruleSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parse rule set: %w", err)
	}
	if raw.Version <= 0 {
		return nil, 0, fmt.Errorf("parse rule set: missing or non-positive version")
	}

	rules := make(RuleSet, len(raw.Types))
	for tp, byLang := range raw.Types {
		langs := make(map[string][]Pattern, len(byLang))
		for lang, pats := range byLang {
			compiled := make([]Pattern, 0, len(pats))
			for _, pj := range pats {
				attrs, err := parseAttributes(pj.Attributes)
				if err != nil {
					return nil, 0, fmt.Errorf("rule set %s/%s: %w", tp, lang, err)
				}
				p, err := Compile(Pattern{
					Positive:   pj.Positive,
					Negative:   pj.Negative,
					Score:      pj.Score,
					Attributes: attrs,
					InputTypes: pj.InputTypes,
				})
				if err != nil {
					return nil, 0, fmt.Errorf("rule set %s/%s: %w", tp, lang, err)
				}
				compiled = append(compiled, p)
			}
			langs[lang] = compiled
		}
		rules[tp] = langs
	}
	return rules, raw.Version, nil
}

func parseAttributes(names []string) (Attribute, error) {
	if len(names) == 0 {
		return AttrLabel | AttrName, nil
	}
	var attrs Attribute
	for _, name := range names {
		switch name {
		case "label":
			attrs |= AttrLabel
		case "name":
			attrs |= AttrName
		default:
			return 0, fmt.Errorf("unknown attribute %q", name)
		}
	}
	return attrs, nil
}

// LoadRuleFile reads and parses a rule set file from disk.
func LoadRuleFile(path string) (RuleSet, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read rule file: %w", err)
	}
	return ParseRuleSet(data)
}

var (
	defaultRulesOnce    sync.Once
	defaultRules        RuleSet
	defaultRulesVersion int
)

// DefaultRuleSet returns the embedded rule set and its version. The
// embedded data is parsed once; a malformed embedded file is a build
// defect and panics.
func DefaultRuleSet() (RuleSet, int) {
	defaultRulesOnce.Do(func() {
		rules, version, err := ParseRuleSet(defaultRulesJSON)
		if err != nil {
			panic("pattern: embedded rules.json: " + err.Error())
		}
		defaultRules = rules
		defaultRulesVersion = version
	})
	return defaultRules, defaultRulesVersion
}
