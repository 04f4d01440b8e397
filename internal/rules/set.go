package rules

import "errors"

type OneOfMatcher struct {
	values map[string]struct{}
}

func NewOneOfMatcher(values []string) (*OneOfMatcher, error) {
	if len(values) == 0 {
		return nil, errors.New("values are required")
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return &OneOfMatcher{values: set}, nil
}

func (m *OneOfMatcher) Match(value string) (bool, string) {
	if _, ok := m.values[value]; !ok {
		return false, ""
	}
	return true, snippet(value)
}

// AnyMatcher matches with the first alternative that matches.
type AnyMatcher struct {
	alternatives []Matcher
}

func NewAnyMatcher(alternatives ...Matcher) (*AnyMatcher, error) {
	if len(alternatives) == 0 {
		return nil, errors.New("alternatives are required")
	}
	return &AnyMatcher{alternatives: alternatives}, nil
}

func (m *AnyMatcher) Match(value string) (bool, string) {
	for _, alt := range m.alternatives {
		if ok, evidence := alt.Match(value); ok {
			return true, evidence
		}
	}
	return false, ""
}

type AlwaysMatcher struct{}

func (AlwaysMatcher) Match(value string) (bool, string) {
	return true, snippet(value)
}
