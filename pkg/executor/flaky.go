package executor

import "sync"

// minFlakyRuns is the history length required before any flaky verdict.
const minFlakyRuns = 3

// FlakyStats summarizes a test's recorded history.
type FlakyStats struct {
	Runs     int
	Passes   int
	PassRate float64
}

// FlakyDetector classifies tests from their pass/fail history. A test is
// flaky only when its pass rate sits strictly between 0.1 and 0.9 over at
// least three runs; consistently passing or failing tests are never flagged.
type FlakyDetector struct {
	mu      sync.Mutex
	history map[string][]bool
}

// NewFlakyDetector creates an empty detector.
func NewFlakyDetector() *FlakyDetector {
	return &FlakyDetector{
		history: make(map[string][]bool),
	}
}

// RecordRun appends one outcome to the test's history.
func (d *FlakyDetector) RecordRun(name string, passed bool) {
	d.mu.Lock()
	d.history[name] = append(d.history[name], passed)
	d.mu.Unlock()
}

// IsFlaky reports whether the test's history marks it flaky.
func (d *FlakyDetector) IsFlaky(name string) bool {
	stats := d.Stats(name)
	if stats.Runs < minFlakyRuns {
		return false
	}
	return stats.PassRate > 0.1 && stats.PassRate < 0.9
}

// Stats returns the test's recorded run summary.
func (d *FlakyDetector) Stats(name string) FlakyStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	runs := d.history[name]
	stats := FlakyStats{Runs: len(runs)}
	for _, passed := range runs {
		if passed {
			stats.Passes++
		}
	}
	if stats.Runs > 0 {
		stats.PassRate = float64(stats.Passes) / float64(stats.Runs)
	}
	return stats
}

// Flaky returns the names of all currently flaky tests.
func (d *FlakyDetector) Flaky() []string {
	d.mu.Lock()
	names := make([]string, 0, len(d.history))
	for name := range d.history {
		names = append(names, name)
	}
	d.mu.Unlock()

	var out []string
	for _, name := range names {
		if d.IsFlaky(name) {
			out = append(out, name)
		}
	}
	return out
}
