package rules

type Rule struct {
	ID       string
	Required bool
	Matcher  Matcher
}

type Match struct {
	RuleID   string
	Evidence string
}

type Result struct {
	Missing []string
	Failed  []Match
	Matched []Match
}

// Complete reports whether every required field was present.
func (r Result) Complete() bool {
	return len(r.Missing) == 0
}

// Valid reports whether the fields were complete and every present field
// matched its rule.
func (r Result) Valid() bool {
	return r.Complete() && len(r.Failed) == 0
}

// Matcher returns true if the value satisfies the rule and a short evidence
// snippet of what matched.
type Matcher interface {
	Match(value string) (bool, string)
}
