package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tally/tally/internal/config"
)

// RegexMatcher matches when the pattern matches the whole value.
type RegexMatcher struct {
	re *regexp.Regexp
}

func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	re, err := regexp.Compile(config.FullMatch(pattern))
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{re: re}, nil
}

func (m *RegexMatcher) Match(value string) (bool, string) {
	if !m.re.MatchString(value) {
		return false, ""
	}
	return true, snippet(value)
}

// RangeMatcher matches when the pattern matches the whole value and its first
// capture group is an integer within [Min, Max].
type RangeMatcher struct {
	re  *regexp.Regexp
	Min int
	Max int
}

func NewRangeMatcher(pattern string, min, max int) (*RangeMatcher, error) {
	re, err := regexp.Compile(config.FullMatch(pattern))
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q has no capture group", pattern)
	}
	if min > max {
		return nil, fmt.Errorf("min %d is greater than max %d", min, max)
	}
	return &RangeMatcher{re: re, Min: min, Max: max}, nil
}

func (m *RangeMatcher) Match(value string) (bool, string) {
	sub := m.re.FindStringSubmatch(value)
	if sub == nil {
		return false, ""
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil || n < m.Min || n > m.Max {
		return false, ""
	}
	return true, snippet(sub[0])
}
