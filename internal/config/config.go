package config

import "github.com/tally/tally/internal/record"

type Config struct {
	ConfigVersion int           `yaml:"configVersion"`
	Jobs          []Job         `yaml:"jobs"`
	Rules         []Rule        `yaml:"rules"`
	Logging       LoggingConfig `yaml:"logging"`
	Metrics       MetricsConfig `yaml:"metrics"`

	baseDir string `yaml:"-"`
}

// Job describes one input file and the rule applied to it.
type Job struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	Input         string `yaml:"input"`
	Policy        string `yaml:"policy"`
	Target        int    `yaml:"target"`
	Size          int    `yaml:"size"`
	Strict        bool   `yaml:"strict"`
	SkipMalformed bool   `yaml:"skipMalformed"`
}

type Rule struct {
	ID       string    `yaml:"id"`
	Required bool      `yaml:"required"`
	Match    RuleMatch `yaml:"match"`
}

type RuleMatch struct {
	Type    string      `yaml:"type"`
	Pattern string      `yaml:"pattern"`
	Min     int         `yaml:"min"`
	Max     int         `yaml:"max"`
	Values  []string    `yaml:"values"`
	Any     []RuleMatch `yaml:"any"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	RunLog string `yaml:"runLog"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

const (
	KindPasswords = "passwords"
	KindExpenses  = "expenses"
	KindPassports = "passports"
)

const (
	MatchRegex  = "regex"
	MatchRange  = "range"
	MatchOneOf  = "oneof"
	MatchAny    = "any"
	MatchAlways = "always"
)

const (
	DefaultTarget = 2020
	DefaultSize   = 2
)

// FullMatch anchors a rule pattern so it must match the whole field value.
func FullMatch(pattern string) string {
	return "^(?:" + pattern + ")$"
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}

// ApplyDefaults fills zero values that have a sensible default.
func (c *Config) ApplyDefaults() {
	for i := range c.Jobs {
		job := &c.Jobs[i]
		if job.Kind == KindExpenses {
			if job.Target == 0 {
				job.Target = DefaultTarget
			}
			if job.Size == 0 {
				job.Size = DefaultSize
			}
		}
		if job.Kind == KindPasswords && job.Policy == "" {
			job.Policy = string(record.VariantCount)
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}
