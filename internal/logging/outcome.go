package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

const maxErrorLen = 256

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Outcome is written as a single JSON object per job run.
type Outcome struct {
	Timestamp  time.Time `json:"ts"`
	RunID      string    `json:"run_id"`
	Job        string    `json:"job"`
	Kind       string    `json:"kind"`
	Input      string    `json:"input"`
	Variant    string    `json:"variant,omitempty"`
	Status     string    `json:"status"`
	Records    int       `json:"records"`
	Valid      int       `json:"valid"`
	Malformed  int       `json:"malformed"`
	Result     int64     `json:"result"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

type OutcomeLogger struct {
	w io.Writer
}

func NewOutcomeLogger(w io.Writer) *OutcomeLogger {
	return &OutcomeLogger{w: w}
}

func OpenRunLog(path string) (*OutcomeLogger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewOutcomeLogger(file), file.Close, nil
}

func (l *OutcomeLogger) Write(outcome Outcome) error {
	outcome.Error = truncate(outcome.Error, maxErrorLen)

	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
