package record

import "fmt"

type Variant string

const (
	VariantCount    Variant = "count"
	VariantPosition Variant = "position"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantCount, VariantPosition:
		return Variant(s), nil
	case "":
		return VariantCount, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want count|position)", s)
	}
}

// Validate applies the variant's rule to r. Unknown variants never validate.
func (v Variant) Validate(r Record) bool {
	switch v {
	case VariantCount:
		return ValidateCount(r)
	case VariantPosition:
		return ValidatePosition(r)
	default:
		return false
	}
}

// ValidateCount reports whether the number of Target runes in Subject lies
// within [Low, High].
func ValidateCount(r Record) bool {
	n := 0
	for _, c := range r.Subject {
		if c == r.Policy.Target {
			n++
		}
	}
	return n >= r.Policy.Low && n <= r.Policy.High
}

// ValidatePosition reports whether exactly one of the 1-indexed positions
// Low and High holds Target.
func ValidatePosition(r Record) bool {
	subject := []rune(r.Subject)
	at := func(pos int) bool {
		if pos < 1 || pos > len(subject) {
			return false
		}
		return subject[pos-1] == r.Policy.Target
	}
	return at(r.Policy.Low) != at(r.Policy.High)
}

func CountValid(records []Record, v Variant) int {
	n := 0
	for _, r := range records {
		if v.Validate(r) {
			n++
		}
	}
	return n
}
