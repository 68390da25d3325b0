// Package measure provides a global, opt-in byte/operation counter used to
// report the cost of a search run (candidates evaluated, rows reduced,
// bits sampled) without instrumenting every call site with conditionals.
package measure

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// Enabled gates all counting. Off by default so a normal search run pays no
// map-locking overhead; set LATNET_MEASURE=1 to turn it on.
var Enabled = os.Getenv("LATNET_MEASURE") != ""

type counters struct {
	mu sync.Mutex
	m  map[string]uint64
}

// Global is the process-wide counter map.
var Global = &counters{m: make(map[string]uint64)}

// Add accumulates n under label. A no-op when Enabled is false, so callers
// can unconditionally call it on a hot path and only pay for the branch.
func (c *counters) Add(label string, n int64) {
	if !Enabled || n == 0 {
		return
	}
	c.mu.Lock()
	c.m[label] += uint64(n)
	c.mu.Unlock()
}

// SnapshotAndReset returns the current counters and clears them.
func (c *counters) SnapshotAndReset() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	c.m = make(map[string]uint64)
	return out
}

// Dump prints the current counters to stderr in ascending key order, then
// clears them.
func (c *counters) Dump() {
	snap := c.SnapshotAndReset()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(os.Stderr, "measure: %-40s %12d\n", k, snap[k])
	}
}

// TimingEntry is one Track call's recorded duration.
type TimingEntry struct {
	Label string
	Dur   time.Duration
}

type timingLog struct {
	mu      sync.Mutex
	entries []TimingEntry
}

// Timings is the process-wide call-site timing log, a sibling to Global's
// byte/operation counters for the same "report the cost of a search run"
// purpose, keyed by wall-clock duration instead of a count.
var Timings = &timingLog{}

// Track records the elapsed time since start under label. Unlike Global's
// counters it isn't gated by Enabled: a caller wrapping a handful of
// evaluate functions in a defer pays a negligible, constant cost regardless,
// so there's no hot-path overhead to protect against.
func (l *timingLog) Track(start time.Time, label string) {
	elapsed := time.Since(start)
	l.mu.Lock()
	l.entries = append(l.entries, TimingEntry{Label: label, Dur: elapsed})
	l.mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func (l *timingLog) SnapshotAndReset() []TimingEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]TimingEntry, len(l.entries))
	copy(out, l.entries)
	l.entries = nil
	return out
}

// BytesMatrix estimates the packed storage of an R x C bit matrix (64-bit
// words per row), for reporting generator-storage cost.
func BytesMatrix(rows, cols int) int64 {
	words := (cols + 63) / 64
	return int64(rows) * int64(words) * 8
}
