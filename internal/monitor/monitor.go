package monitor

import (
	"sort"
	"sync"
	"time"
)

// Collector aggregates per-operation call counts, failures and timings
// for the lifetime of one client session
type Collector struct {
	mu      sync.Mutex
	started time.Time
	ops     map[string]*opStats
}

type opStats struct {
	count    int64
	failures int64
	total    time.Duration
	min      time.Duration
	max      time.Duration
}

// New creates an empty collector
func New() *Collector {
	return &Collector{
		started: time.Now(),
		ops:     make(map[string]*opStats),
	}
}

// RecordOperation records one completed dispatch of the named operation
func (c *Collector) RecordOperation(name string, elapsed time.Duration, err error) {
	if name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.ops[name]
	if !ok {
		stats = &opStats{min: elapsed, max: elapsed}
		c.ops[name] = stats
	}

	stats.count++
	stats.total += elapsed
	if err != nil {
		stats.failures++
	}
	if elapsed < stats.min {
		stats.min = elapsed
	}
	if elapsed > stats.max {
		stats.max = elapsed
	}
}

// OperationStats is the exported view of one operation's counters
type OperationStats struct {
	Operation string        `json:"operation"`
	Count     int64         `json:"count"`
	Failures  int64         `json:"failures"`
	MinTime   time.Duration `json:"min_time_ns"`
	MaxTime   time.Duration `json:"max_time_ns"`
	AvgTime   time.Duration `json:"avg_time_ns"`
}

// Report is a point-in-time summary of the session's operations
type Report struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	Uptime        time.Duration    `json:"uptime_ns"`
	TotalCalls    int64            `json:"total_calls"`
	TotalFailures int64            `json:"total_failures"`
	Operations    []OperationStats `json:"operations"`
}

// SuccessRate returns the fraction of calls that fulfilled, in [0, 1]
func (r Report) SuccessRate() float64 {
	if r.TotalCalls == 0 {
		return 1
	}
	return float64(r.TotalCalls-r.TotalFailures) / float64(r.TotalCalls)
}

// Snapshot builds a report over everything recorded so far
func (c *Collector) Snapshot() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := Report{
		GeneratedAt: time.Now(),
		Uptime:      time.Since(c.started),
		Operations:  make([]OperationStats, 0, len(c.ops)),
	}

	for name, stats := range c.ops {
		report.TotalCalls += stats.count
		report.TotalFailures += stats.failures

		avg := time.Duration(0)
		if stats.count > 0 {
			avg = stats.total / time.Duration(stats.count)
		}

		report.Operations = append(report.Operations, OperationStats{
			Operation: name,
			Count:     stats.count,
			Failures:  stats.failures,
			MinTime:   stats.min,
			MaxTime:   stats.max,
			AvgTime:   avg,
		})
	}

	sort.Slice(report.Operations, func(i, j int) bool {
		return report.Operations[i].Operation < report.Operations[j].Operation
	})

	return report
}

// Reset discards all recorded operations
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = time.Now()
	c.ops = make(map[string]*opStats)
}
