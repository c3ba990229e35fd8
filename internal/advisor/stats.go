package advisor

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationUs int64
}

// StatsSnapshot is a point-in-time aggregate of evaluation latencies.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// EvalStats tracks recent Evaluate call latencies within a rolling window.
// Evaluation is tree-walk bound, so samples are in microseconds.
type EvalStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewEvalStats(maxAge time.Duration) *EvalStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &EvalStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *EvalStats) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationUs: us,
	})
}

func (s *EvalStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

func (s *EvalStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
