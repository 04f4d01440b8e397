package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/tally/tally/internal/record"
)

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

func (c *Config) Validate() error {
	v := &ValidationError{}

	if c.ConfigVersion != 1 {
		v.Add("configVersion must be 1")
	}

	if len(c.Jobs) == 0 {
		v.Add("jobs must not be empty")
	}

	jobNames := map[string]struct{}{}
	for i, job := range c.Jobs {
		if job.Name == "" {
			v.Add("jobs[%d].name is required", i)
		} else if _, exists := jobNames[job.Name]; exists {
			v.Add("jobs[%d].name %q is duplicated", i, job.Name)
		} else {
			jobNames[job.Name] = struct{}{}
		}

		if job.Input == "" {
			v.Add("jobs[%d].input is required", i)
		} else if err := requireFile(c.resolvePath(job.Input)); err != nil {
			v.Add("jobs[%d].input invalid: %v", i, err)
		}

		switch job.Kind {
		case KindPasswords:
			if _, err := record.ParseVariant(job.Policy); err != nil {
				v.Add("jobs[%d].policy must be count|position", i)
			}
		case KindExpenses:
			if job.Size <= 0 {
				v.Add("jobs[%d].size must be > 0", i)
			}
		case KindPassports:
		default:
			v.Add("jobs[%d].kind must be passwords|expenses|passports", i)
		}
	}

	c.validateRules(v)

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		v.Add("logging.level must be debug|info|warn|error")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		v.Add("logging.format must be console|json")
	}
	if c.Logging.RunLog != "" {
		if err := ensureDir(c.resolvePath(c.Logging.RunLog)); err != nil {
			v.Add("logging.runLog invalid: %v", err)
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Textfile == "" {
			v.Add("metrics.textfile required when metrics.enabled is true")
		} else if err := ensureDir(c.resolvePath(c.Metrics.Textfile)); err != nil {
			v.Add("metrics.textfile invalid: %v", err)
		}
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

// ValidateRules checks only the rules section, for callers that borrow the
// field rules of a file without running its jobs.
func (c *Config) ValidateRules() error {
	v := &ValidationError{}
	c.validateRules(v)
	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

func (c *Config) validateRules(v *ValidationError) {
	ruleIDs := map[string]struct{}{}
	for i, rule := range c.Rules {
		if rule.ID == "" {
			v.Add("rules[%d].id is required", i)
		} else if _, exists := ruleIDs[rule.ID]; exists {
			v.Add("rules[%d].id %q is duplicated", i, rule.ID)
		} else {
			ruleIDs[rule.ID] = struct{}{}
		}
		validateMatch(v, fmt.Sprintf("rules[%d].match", i), rule.Match)
	}
}

func validateMatch(v *ValidationError, field string, m RuleMatch) {
	switch m.Type {
	case MatchRegex:
		if m.Pattern == "" {
			v.Add("%s.pattern is required for regex", field)
		} else if _, err := regexp.Compile(FullMatch(m.Pattern)); err != nil {
			v.Add("%s.pattern invalid: %v", field, err)
		}
	case MatchRange:
		if m.Pattern == "" {
			v.Add("%s.pattern is required for range", field)
		} else if re, err := regexp.Compile(FullMatch(m.Pattern)); err != nil {
			v.Add("%s.pattern invalid: %v", field, err)
		} else if re.NumSubexp() < 1 {
			v.Add("%s.pattern must capture the number", field)
		}
		if m.Min > m.Max {
			v.Add("%s.min must be <= max", field)
		}
	case MatchOneOf:
		if len(m.Values) == 0 {
			v.Add("%s.values is required for oneof", field)
		}
	case MatchAny:
		if len(m.Any) == 0 {
			v.Add("%s.any is required for any", field)
		}
		for i, alt := range m.Any {
			validateMatch(v, fmt.Sprintf("%s.any[%d]", field, i), alt)
		}
	case MatchAlways:
	case "":
		v.Add("%s.type is required", field)
	default:
		v.Add("%s.type must be regex|range|oneof|any|always", field)
	}
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
