package observability

import (
	"sort"
	"sync"
	"time"
)

// Metrics keeps in-memory per-operation counters for the registry.
type Metrics struct {
	mu        sync.Mutex
	callCount map[string]int64
	errCount  map[string]int64
	totalTime map[string]time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		callCount: make(map[string]int64),
		errCount:  make(map[string]int64),
		totalTime: make(map[string]time.Duration),
	}
}

// RecordCall increments counters for one operation invocation.
func (m *Metrics) RecordCall(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount[op]++
	m.totalTime[op] += duration
}

// RecordError increments error counters, keyed by operation and code.
func (m *Metrics) RecordError(op, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errCount[op+"|"+code]++
}

// OpStat summarizes one operation's counters.
type OpStat struct {
	Op    string
	Calls int64
	Total time.Duration
}

// Snapshot returns per-operation call counts ordered by operation name.
func (m *Metrics) Snapshot() []OpStat {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OpStat, 0, len(m.callCount))
	for op, calls := range m.callCount {
		out = append(out, OpStat{Op: op, Calls: calls, Total: m.totalTime[op]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Op < out[j].Op })
	return out
}

// ErrorCount returns the recorded failures for one operation and code.
func (m *Metrics) ErrorCount(op, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errCount[op+"|"+code]
}
