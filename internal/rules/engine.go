package rules

import "sort"

// Engine evaluates field rules against one parsed record.
type Engine struct {
	Rules []Rule
}

// Known reports whether a rule exists for the field.
func (e *Engine) Known(field string) bool {
	for _, rule := range e.Rules {
		if rule.ID == field {
			return true
		}
	}
	return false
}

func (e *Engine) Evaluate(fields map[string]string) Result {
	result := Result{}

	for _, rule := range e.Rules {
		value, ok := fields[rule.ID]
		if !ok {
			if rule.Required {
				result.Missing = append(result.Missing, rule.ID)
			}
			continue
		}

		matched, evidence := rule.Matcher.Match(value)
		if !matched {
			result.Failed = append(result.Failed, Match{RuleID: rule.ID, Evidence: snippet(value)})
			continue
		}

		result.Matched = append(result.Matched, Match{RuleID: rule.ID, Evidence: evidence})
	}

	sort.Strings(result.Missing)
	return result
}
