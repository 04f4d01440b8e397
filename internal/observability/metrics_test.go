package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tally/tally/internal/logging"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	metrics.Observe(logging.Outcome{Job: "pw", Kind: "passwords", Status: logging.StatusOK, Records: 3, Valid: 2, Malformed: 1, Result: 2, DurationMS: 12})
	metrics.Observe(logging.Outcome{Job: "pw", Kind: "passwords", Status: logging.StatusError})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("expected metrics gather to succeed: %v", err)
	}

	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
		if f.GetName() != "tally_jobs_total" {
			continue
		}
		if len(f.GetMetric()) != 2 {
			t.Fatalf("expected ok and error series, got %d", len(f.GetMetric()))
		}
	}
	for _, name := range []string{"tally_jobs_total", "tally_records_total", "tally_result", "tally_job_duration_seconds"} {
		if !found[name] {
			t.Fatalf("missing metric family %s", name)
		}
	}
}

func TestMetricsWriteTextfile(t *testing.T) {
	metrics := NewMetrics(nil)
	metrics.Observe(logging.Outcome{Job: "ex", Kind: "expenses", Status: logging.StatusOK, Records: 6, Valid: 2, Result: 514579})

	path := filepath.Join(t.TempDir(), "tally.prom")
	if err := metrics.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `tally_result{job="ex",kind="expenses"} 514579`) {
		t.Fatalf("expected result gauge in textfile:\n%s", data)
	}
}

func TestNilMetricsObserve(t *testing.T) {
	var m *Metrics
	m.Observe(logging.Outcome{Job: "x"})
}
