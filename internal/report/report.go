package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tally/tally/internal/logging"
)

type Summary struct {
	Jobs         int             `json:"jobs"`
	Succeeded    int             `json:"succeeded"`
	Failed       int             `json:"failed"`
	Records      int             `json:"records"`
	Valid        int             `json:"valid"`
	Malformed    int             `json:"malformed"`
	Runs         int             `json:"runs"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	Latest       []LatestResult  `json:"latest"`
	TopFailed    []CountItem     `json:"top_failed"`
	TopMalformed []CountItem     `json:"top_malformed"`
	Duration     DurationSummary `json:"duration"`
}

type LatestResult struct {
	Job    string `json:"job"`
	Status string `json:"status"`
	Result int64  `json:"result"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type DurationSummary struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type Reader struct {
	Since time.Time
}

func (r *Reader) Read(path string) ([]logging.Outcome, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var outcomes []logging.Outcome
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var o logging.Outcome
		if err := json.Unmarshal([]byte(line), &o); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if !r.Since.IsZero() && o.Timestamp.Before(r.Since) {
			continue
		}
		outcomes = append(outcomes, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func Summarize(outcomes []logging.Outcome) Summary {
	var summary Summary
	if len(outcomes) == 0 {
		return summary
	}

	summary.Start = outcomes[0].Timestamp
	summary.End = outcomes[0].Timestamp

	runs := map[string]struct{}{}
	latest := map[string]logging.Outcome{}
	failedCounts := map[string]int{}
	malformedCounts := map[string]int{}
	durations := make([]int64, 0, len(outcomes))

	for _, o := range outcomes {
		summary.Jobs++
		if o.Timestamp.Before(summary.Start) {
			summary.Start = o.Timestamp
		}
		if o.Timestamp.After(summary.End) {
			summary.End = o.Timestamp
		}
		if o.RunID != "" {
			runs[o.RunID] = struct{}{}
		}

		switch o.Status {
		case logging.StatusOK:
			summary.Succeeded++
		case logging.StatusError:
			summary.Failed++
			failedCounts[o.Job]++
		}

		summary.Records += o.Records
		summary.Valid += o.Valid
		summary.Malformed += o.Malformed
		if o.Malformed > 0 {
			malformedCounts[o.Job] += o.Malformed
		}

		if prev, ok := latest[o.Job]; !ok || !o.Timestamp.Before(prev.Timestamp) {
			latest[o.Job] = o
		}

		durations = append(durations, o.DurationMS)
	}

	summary.Runs = len(runs)
	summary.Latest = latestResults(latest)
	summary.TopFailed = topCounts(failedCounts, 5)
	summary.TopMalformed = topCounts(malformedCounts, 5)
	summary.Duration = durationSummary(durations)

	return summary
}

func latestResults(latest map[string]logging.Outcome) []LatestResult {
	out := make([]LatestResult, 0, len(latest))
	for job, o := range latest {
		out = append(out, LatestResult{Job: job, Status: o.Status, Result: o.Result})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func durationSummary(values []int64) DurationSummary {
	if len(values) == 0 {
		return DurationSummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return DurationSummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Runs: %d\n", summary.Runs)
	fmt.Fprintf(&b, "Jobs: %d (ok %d, failed %d)\n", summary.Jobs, summary.Succeeded, summary.Failed)
	fmt.Fprintf(&b, "Records: %d (valid %d, malformed %d)\n", summary.Records, summary.Valid, summary.Malformed)
	fmt.Fprintf(&b, "Duration p50/p95/p99 (ms): %.0f/%.0f/%.0f\n", summary.Duration.P50, summary.Duration.P95, summary.Duration.P99)

	if len(summary.Latest) == 0 {
		b.WriteString("Latest results: none\n")
	} else {
		b.WriteString("Latest results:\n")
		for _, l := range summary.Latest {
			fmt.Fprintf(&b, "- %s: %d (%s)\n", l.Job, l.Result, l.Status)
		}
	}
	writeCounts(&b, "Top failing jobs", summary.TopFailed)
	writeCounts(&b, "Top malformed inputs", summary.TopMalformed)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# Tally Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Runs: %d\n", summary.Runs)
	fmt.Fprintf(&b, "- Jobs: %d\n", summary.Jobs)
	fmt.Fprintf(&b, "- Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Records: %d (valid %d, malformed %d)\n", summary.Records, summary.Valid, summary.Malformed)
	fmt.Fprintf(&b, "- Duration p50/p95/p99 (ms): %.0f/%.0f/%.0f\n\n", summary.Duration.P50, summary.Duration.P95, summary.Duration.P99)

	b.WriteString("## Latest results\n\n")
	if len(summary.Latest) == 0 {
		b.WriteString("- none\n\n")
	} else {
		b.WriteString("| job | result | status |\n|-----|--------|--------|\n")
		for _, l := range summary.Latest {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", l.Job, l.Result, l.Status)
		}
		b.WriteString("\n")
	}

	writeCountsMarkdown(&b, "Top failing jobs", summary.TopFailed)
	writeCountsMarkdown(&b, "Top malformed inputs", summary.TopMalformed)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

// WriteOutput writes to path, or to w when path is empty.
func WriteOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := io.Copy(w, bytes.NewReader(content))
		return err
	}
	return os.WriteFile(path, content, 0o600)
}
