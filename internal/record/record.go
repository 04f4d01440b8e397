package record

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var lineRe = regexp.MustCompile(`^(\d+)-(\d+) (\S): (\S+)$`)

// Policy bounds how often or where Target may appear in a subject.
type Policy struct {
	Low    int
	High   int
	Target rune
}

// Record is one parsed input line.
type Record struct {
	Policy  Policy
	Subject string
}

// ParseError reports an input line that does not have the expected shape.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Parse reads a line of the form "<low>-<high> <char>: <subject>".
func Parse(line string) (Record, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, &ParseError{Text: line, Reason: "expected <low>-<high> <char>: <subject>"}
	}

	low, err := strconv.Atoi(m[1])
	if err != nil {
		return Record{}, &ParseError{Text: line, Reason: "invalid low bound"}
	}
	high, err := strconv.Atoi(m[2])
	if err != nil {
		return Record{}, &ParseError{Text: line, Reason: "invalid high bound"}
	}

	return Record{
		Policy:  Policy{Low: low, High: high, Target: []rune(m[3])[0]},
		Subject: m[4],
	}, nil
}

// ParseLines parses numbered lines. A malformed line aborts unless skip is
// set, in which case it is counted and dropped.
func ParseLines(lines []string, skip bool) ([]Record, int, error) {
	records := make([]Record, 0, len(lines))
	malformed := 0
	for i, line := range lines {
		r, err := Parse(line)
		if err != nil {
			if skip {
				malformed++
				continue
			}
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = i + 1
			}
			return nil, malformed, err
		}
		records = append(records, r)
	}
	return records, malformed, nil
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d %c: %s", r.Policy.Low, r.Policy.High, r.Policy.Target, r.Subject)
}
