package rules

import "regexp"

var eyeColors = []string{"amb", "blu", "brn", "gry", "grn", "hzl", "oth"}

// DefaultEngine returns the passport field rules. cid is accepted but
// neither required nor checked.
func DefaultEngine() *Engine {
	return &Engine{Rules: []Rule{
		{ID: "byr", Required: true, Matcher: yearRange(1920, 2002)},
		{ID: "iyr", Required: true, Matcher: yearRange(2010, 2020)},
		{ID: "eyr", Required: true, Matcher: yearRange(2020, 2030)},
		{ID: "hgt", Required: true, Matcher: &AnyMatcher{alternatives: []Matcher{
			mustRange(`^(\d+)cm$`, 150, 193),
			mustRange(`^(\d+)in$`, 59, 76),
		}}},
		{ID: "hcl", Required: true, Matcher: &RegexMatcher{re: regexp.MustCompile(`^#[0-9a-f]{6}$`)}},
		{ID: "ecl", Required: true, Matcher: mustOneOf(eyeColors)},
		{ID: "pid", Required: true, Matcher: &RegexMatcher{re: regexp.MustCompile(`^\d{9}$`)}},
		{ID: "cid", Matcher: AlwaysMatcher{}},
	}}
}

func yearRange(min, max int) Matcher {
	return mustRange(`^(\d{4})$`, min, max)
}

func mustRange(pattern string, min, max int) *RangeMatcher {
	m, err := NewRangeMatcher(pattern, min, max)
	if err != nil {
		panic(err)
	}
	return m
}

func mustOneOf(values []string) *OneOfMatcher {
	m, err := NewOneOfMatcher(values)
	if err != nil {
		panic(err)
	}
	return m
}
