package rules

const maxEvidence = 32

// snippet truncates evidence to maxEvidence runes.
func snippet(value string) string {
	n := 0
	for i := range value {
		if n == maxEvidence {
			return value[:i]
		}
		n++
	}
	return value
}
