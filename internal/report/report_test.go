package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tally/tally/internal/logging"
)

func sampleOutcomes() []logging.Outcome {
	return []logging.Outcome{
		{Timestamp: time.Unix(0, 0), RunID: "a", Job: "pw", Status: "ok", Records: 3, Valid: 2, Result: 2, DurationMS: 10},
		{Timestamp: time.Unix(1, 0), RunID: "a", Job: "ex", Status: "error", Error: "boom", DurationMS: 30},
		{Timestamp: time.Unix(2, 0), RunID: "b", Job: "pw", Status: "ok", Records: 4, Valid: 1, Malformed: 2, Result: 1, DurationMS: 20},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleOutcomes())
	if summary.Jobs != 3 || summary.Runs != 2 {
		t.Fatalf("expected 3 jobs over 2 runs, got %d/%d", summary.Jobs, summary.Runs)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected status counts %d/%d", summary.Succeeded, summary.Failed)
	}
	if summary.Records != 7 || summary.Valid != 3 || summary.Malformed != 2 {
		t.Fatalf("unexpected record counts %+v", summary)
	}
	if len(summary.TopFailed) != 1 || summary.TopFailed[0].Key != "ex" {
		t.Fatalf("expected top failed ex, got %+v", summary.TopFailed)
	}
	if len(summary.TopMalformed) != 1 || summary.TopMalformed[0].Count != 2 {
		t.Fatalf("expected pw with 2 malformed, got %+v", summary.TopMalformed)
	}
	if len(summary.Latest) != 2 || summary.Latest[1].Job != "pw" || summary.Latest[1].Result != 1 {
		t.Fatalf("expected latest pw result 1, got %+v", summary.Latest)
	}
	if summary.Duration.P50 != 20 {
		t.Fatalf("expected p50 20, got %v", summary.Duration.P50)
	}
	if !summary.End.Equal(time.Unix(2, 0)) {
		t.Fatalf("unexpected end %v", summary.End)
	}
}

func TestReaderSince(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	var buf bytes.Buffer
	logger := logging.NewOutcomeLogger(&buf)
	for _, o := range sampleOutcomes() {
		if err := logger.Write(o); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write run log: %v", err)
	}

	reader := Reader{Since: time.Unix(1, 0)}
	outcomes, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes since t=1, got %d", len(outcomes))
	}
}

func TestReaderBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	if err := os.WriteFile(path, []byte("{}\nnot-json\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := (&Reader{}).Read(path)
	if err == nil || !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected error naming line 2, got %v", err)
	}
}

func TestRender(t *testing.T) {
	summary := Summarize(sampleOutcomes())

	text := RenderText(summary)
	if !strings.Contains(text, "- pw: 1 (ok)") || !strings.Contains(text, "Top failing jobs:\n- ex: 1") {
		t.Fatalf("unexpected text report:\n%s", text)
	}
	md := RenderMarkdown(summary)
	if !strings.Contains(md, "| ex | 0 | error |") {
		t.Fatalf("unexpected markdown report:\n%s", md)
	}
	if _, err := RenderJSON(summary); err != nil {
		t.Fatalf("expected json render ok: %v", err)
	}
	if empty := RenderText(Summarize(nil)); !strings.Contains(empty, "Latest results: none") {
		t.Fatalf("unexpected empty report:\n%s", empty)
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, "", []byte("hello")); err != nil || buf.String() != "hello" {
		t.Fatalf("expected stdout write, got %q %v", buf.String(), err)
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteOutput(&buf, path, []byte("file")); err != nil {
		t.Fatalf("WriteOutput error: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "file" {
		t.Fatalf("unexpected file content %q", data)
	}
}
