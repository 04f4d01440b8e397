package expense

import (
	"strconv"
	"strings"

	"github.com/tally/tally/internal/record"
)

// ParseEntries reads one integer per line.
func ParseEntries(lines []string, skip bool) ([]int, int, error) {
	entries := make([]int, 0, len(lines))
	malformed := 0
	for i, line := range lines {
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			if skip {
				malformed++
				continue
			}
			return nil, malformed, &record.ParseError{Line: i + 1, Text: line, Reason: "expected an integer"}
		}
		entries = append(entries, n)
	}
	return entries, malformed, nil
}

// FindCombination returns the first size distinct entries, in index order,
// whose sum equals target.
func FindCombination(entries []int, size, target int) ([]int, bool) {
	if size <= 0 || size > len(entries) {
		return nil, false
	}

	idx := make([]int, size)
	var search func(depth, start, sum int) bool
	search = func(depth, start, sum int) bool {
		if depth == size {
			return sum == target
		}
		for i := start; i <= len(entries)-(size-depth); i++ {
			idx[depth] = i
			if search(depth+1, i+1, sum+entries[i]) {
				return true
			}
		}
		return false
	}

	if !search(0, 0, 0) {
		return nil, false
	}

	out := make([]int, size)
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out, true
}

func Product(values []int) int64 {
	p := int64(1)
	for _, v := range values {
		p *= int64(v)
	}
	return p
}
