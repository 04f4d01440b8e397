package passport

import (
	"strings"

	"github.com/tally/tally/internal/input"
	"github.com/tally/tally/internal/record"
	"github.com/tally/tally/internal/rules"
)

// Passport holds the key:value fields of one blank-line separated group.
type Passport struct {
	Line   int
	Fields map[string]string
}

// Parse turns groups into passports. Tokens must be key:value with a key the
// engine has a rule for.
func Parse(groups []input.Group, engine *rules.Engine, skip bool) ([]Passport, int, error) {
	passports := make([]Passport, 0, len(groups))
	malformed := 0
	for _, group := range groups {
		p, err := parseGroup(group, engine)
		if err != nil {
			if skip {
				malformed++
				continue
			}
			return nil, malformed, err
		}
		passports = append(passports, p)
	}
	return passports, malformed, nil
}

func parseGroup(group input.Group, engine *rules.Engine) (Passport, error) {
	p := Passport{Line: group.StartLine, Fields: map[string]string{}}
	for i, line := range group.Lines {
		for _, token := range strings.Fields(line) {
			key, value, ok := strings.Cut(token, ":")
			if !ok || key == "" || strings.Contains(value, ":") {
				return Passport{}, &record.ParseError{Line: group.StartLine + i, Text: token, Reason: "expected key:value"}
			}
			if !engine.Known(key) {
				return Passport{}, &record.ParseError{Line: group.StartLine + i, Text: token, Reason: "unknown field"}
			}
			p.Fields[key] = value
		}
	}
	return p, nil
}

// CountComplete counts passports carrying every required field.
func CountComplete(engine *rules.Engine, passports []Passport) int {
	n := 0
	for _, p := range passports {
		if engine.Evaluate(p.Fields).Complete() {
			n++
		}
	}
	return n
}

// CountValid counts passports that are complete and whose fields all pass.
func CountValid(engine *rules.Engine, passports []Passport) int {
	n := 0
	for _, p := range passports {
		if engine.Evaluate(p.Fields).Valid() {
			n++
		}
	}
	return n
}
