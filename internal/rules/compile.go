package rules

import (
	"fmt"

	"github.com/tally/tally/internal/config"
)

// BuildEngine compiles the configured rules, falling back to the built-in
// passport rules when none are configured.
func BuildEngine(cfg *config.Config) (*Engine, error) {
	if cfg == nil || len(cfg.Rules) == 0 {
		return DefaultEngine(), nil
	}

	rules := make([]Rule, 0, len(cfg.Rules))
	seen := make(map[string]struct{}, len(cfg.Rules))
	for _, raw := range cfg.Rules {
		if raw.ID == "" {
			return nil, fmt.Errorf("rule id is required")
		}
		if _, ok := seen[raw.ID]; ok {
			return nil, fmt.Errorf("rule %s: duplicate id", raw.ID)
		}
		seen[raw.ID] = struct{}{}
		compiled, err := compileRule(raw)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", raw.ID, err)
		}
		rules = append(rules, compiled)
	}

	return &Engine{Rules: rules}, nil
}

func compileRule(raw config.Rule) (Rule, error) {
	matcher, err := compileMatch(raw.Match)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		ID:       raw.ID,
		Required: raw.Required,
		Matcher:  matcher,
	}, nil
}

func compileMatch(m config.RuleMatch) (Matcher, error) {
	switch m.Type {
	case config.MatchRegex:
		if m.Pattern == "" {
			return nil, fmt.Errorf("regex pattern is required")
		}
		return NewRegexMatcher(m.Pattern)
	case config.MatchRange:
		return NewRangeMatcher(m.Pattern, m.Min, m.Max)
	case config.MatchOneOf:
		return NewOneOfMatcher(m.Values)
	case config.MatchAny:
		alternatives := make([]Matcher, 0, len(m.Any))
		for i, alt := range m.Any {
			compiled, err := compileMatch(alt)
			if err != nil {
				return nil, fmt.Errorf("any[%d]: %w", i, err)
			}
			alternatives = append(alternatives, compiled)
		}
		return NewAnyMatcher(alternatives...)
	case config.MatchAlways:
		return AlwaysMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown match type %q", m.Type)
	}
}
