package statistics

import (
	"math"
	"sync/atomic"
	"time"

	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
)

// DefaultLatencyTarget is the average end-to-end latency an engine aims for.
const DefaultLatencyTarget = time.Millisecond

// Statistics aggregates execution counters. Every field is updated with
// atomics so concurrent executions never lose an update; a Snapshot taken
// while executions are in flight may mix counters from either side of one.
type Statistics struct {
	target time.Duration

	totalOrders     atomic.Int64
	totalExecutions atomic.Int64
	cancels         atomic.Int64

	requested atomicFloat
	filled    atomicFloat

	latencyCount atomic.Int64
	latencySum   atomic.Int64
	latencyMin   atomic.Int64
	latencyMax   atomic.Int64
}

// New returns empty statistics with the given latency target. A non-positive
// target falls back to DefaultLatencyTarget.
func New(target time.Duration) *Statistics {
	if target <= 0 {
		target = DefaultLatencyTarget
	}
	s := &Statistics{target: target}
	s.latencyMin.Store(math.MaxInt64)
	return s
}

// RecordExecution accounts one accepted order.
func (s *Statistics) RecordExecution(result *executionv1.ExecutionResult) {
	s.totalOrders.Add(1)
	if result.ExecutedQuantity > 0 {
		s.totalExecutions.Add(1)
	}
	s.requested.add(result.RequestedQuantity)
	s.filled.add(result.ExecutedQuantity)
	s.recordLatency(result.LatencyNs)
}

// RecordCancel counts one successful cancel.
func (s *Statistics) RecordCancel() {
	s.cancels.Add(1)
}

// RecordCancels counts n successful cancels.
func (s *Statistics) RecordCancels(n int) {
	if n > 0 {
		s.cancels.Add(int64(n))
	}
}

func (s *Statistics) recordLatency(ns int64) {
	s.latencyCount.Add(1)
	s.latencySum.Add(ns)
	for {
		cur := s.latencyMin.Load()
		if ns >= cur || s.latencyMin.CompareAndSwap(cur, ns) {
			break
		}
	}
	for {
		cur := s.latencyMax.Load()
		if ns <= cur || s.latencyMax.CompareAndSwap(cur, ns) {
			break
		}
	}
}

// Snapshot reads the counters. active is supplied by the caller because the
// venue owns resting orders.
func (s *Statistics) Snapshot(active int64) executionv1.PerformanceStats {
	stats := executionv1.PerformanceStats{
		TotalOrders:       s.totalOrders.Load(),
		TotalExecutions:   s.totalExecutions.Load(),
		ActiveOrders:      active,
		CancelCount:       s.cancels.Load(),
		RequestedQuantity: s.requested.load(),
		FilledQuantity:    s.filled.load(),
		Latency: executionv1.LatencyStats{
			TargetNs: s.target.Nanoseconds(),
		},
	}
	if stats.RequestedQuantity > 0 {
		stats.FillRate = stats.FilledQuantity / stats.RequestedQuantity
	}

	if n := s.latencyCount.Load(); n > 0 {
		stats.Latency.AvgNs = s.latencySum.Load() / n
		stats.Latency.MinNs = s.latencyMin.Load()
		stats.Latency.MaxNs = s.latencyMax.Load()
		stats.Latency.Achieved = stats.Latency.AvgNs <= stats.Latency.TargetNs
	}
	return stats
}

// Reset zeroes every counter. The target is kept.
func (s *Statistics) Reset() {
	s.totalOrders.Store(0)
	s.totalExecutions.Store(0)
	s.cancels.Store(0)
	s.requested.store(0)
	s.filled.store(0)
	s.latencyCount.Store(0)
	s.latencySum.Store(0)
	s.latencyMin.Store(math.MaxInt64)
	s.latencyMax.Store(0)
}

type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) add(delta float64) {
	for {
		old := f.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if f.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (f *atomicFloat) load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) store(v float64) {
	f.bits.Store(math.Float64bits(v))
}
