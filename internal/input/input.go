package input

import (
	"fmt"
	"os"
	"strings"
)

// IOError reports an input file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read input %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Group is a run of consecutive non-blank lines.
type Group struct {
	StartLine int
	Lines     []string
}

// ReadLines reads the whole file and splits it into lines. Carriage returns
// are stripped and trailing empty lines are dropped.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return SplitLines(string(data)), nil
}

func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// ReadGroups reads the file as blank-line separated groups.
func ReadGroups(path string) ([]Group, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return SplitGroups(lines), nil
}

func SplitGroups(lines []string) []Group {
	var groups []Group
	var current *Group
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			current = nil
			continue
		}
		if current == nil {
			groups = append(groups, Group{StartLine: i + 1})
			current = &groups[len(groups)-1]
		}
		current.Lines = append(current.Lines, line)
	}
	return groups
}
