package corrector

import "sync/atomic"

// Metrics aggregates counters over every call of one engine. They are for observability
// only; per-call numbers are in Result.Stats.
type Metrics struct {
	calls     atomic.Int64
	detected  atomic.Int64
	corrected atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Calls     int64 `json:"calls" msgpack:"calls"`
	Detected  int64 `json:"detected" msgpack:"detected"`
	Corrected int64 `json:"corrected" msgpack:"corrected"`
}

func (m *Metrics) record(s Stats) {
	m.calls.Add(1)
	m.detected.Add(int64(s.Detected))
	m.corrected.Add(int64(s.Corrected))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Calls:     m.calls.Load(),
		Detected:  m.detected.Load(),
		Corrected: m.corrected.Load(),
	}
}
