package statistics

import (
	"sync"
	"testing"
	"time"

	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(requested, executed float64, latency time.Duration) *executionv1.ExecutionResult {
	return &executionv1.ExecutionResult{
		RequestedQuantity: requested,
		ExecutedQuantity:  executed,
		LatencyNs:         latency.Nanoseconds(),
	}
}

func TestStatistics_Snapshot(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := New(0)
		stats := s.Snapshot(0)

		assert.Equal(t, int64(0), stats.TotalOrders)
		assert.Equal(t, 0.0, stats.FillRate)
		assert.Equal(t, int64(0), stats.Latency.MinNs)
		assert.Equal(t, DefaultLatencyTarget.Nanoseconds(), stats.Latency.TargetNs)
		assert.False(t, stats.Latency.Achieved)
	})

	t.Run("aggregates", func(t *testing.T) {
		s := New(2 * time.Millisecond)
		s.RecordExecution(result(10, 10, time.Millisecond))
		s.RecordExecution(result(10, 0, 3*time.Millisecond))
		s.RecordExecution(result(20, 5, 2*time.Millisecond))
		s.RecordCancel()
		s.RecordCancels(2)
		s.RecordCancels(0)

		stats := s.Snapshot(4)
		assert.Equal(t, int64(3), stats.TotalOrders)
		assert.Equal(t, int64(2), stats.TotalExecutions)
		assert.Equal(t, int64(4), stats.ActiveOrders)
		assert.Equal(t, int64(3), stats.CancelCount)
		assert.InDelta(t, 40.0, stats.RequestedQuantity, 1e-9)
		assert.InDelta(t, 15.0, stats.FilledQuantity, 1e-9)
		assert.InDelta(t, 0.375, stats.FillRate, 1e-9)
		assert.Equal(t, (2 * time.Millisecond).Nanoseconds(), stats.Latency.AvgNs)
		assert.Equal(t, time.Millisecond.Nanoseconds(), stats.Latency.MinNs)
		assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.Latency.MaxNs)
		assert.True(t, stats.Latency.Achieved)
	})
}

func TestStatistics_Reset(t *testing.T) {
	s := New(time.Millisecond)
	s.RecordExecution(result(1, 1, 5*time.Millisecond))
	s.RecordCancel()
	s.Reset()

	stats := s.Snapshot(0)
	assert.Equal(t, executionv1.PerformanceStats{
		Latency: executionv1.LatencyStats{TargetNs: time.Millisecond.Nanoseconds()},
	}, stats)

	s.RecordExecution(result(1, 1, 7*time.Millisecond))
	stats = s.Snapshot(0)
	assert.Equal(t, (7 * time.Millisecond).Nanoseconds(), stats.Latency.MinNs)
	assert.False(t, stats.Latency.Achieved)
}

func TestStatistics_ConcurrentUpdates(t *testing.T) {
	s := New(time.Millisecond)

	const workers, perWorker = 8, 500
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				s.RecordExecution(result(2, 1, time.Duration(w*perWorker+i+1)))
				s.RecordCancel()
			}
		}()
	}
	wg.Wait()

	stats := s.Snapshot(0)
	require.Equal(t, int64(workers*perWorker), stats.TotalOrders)
	assert.Equal(t, int64(workers*perWorker), stats.CancelCount)
	assert.InDelta(t, float64(2*workers*perWorker), stats.RequestedQuantity, 1e-6)
	assert.InDelta(t, 0.5, stats.FillRate, 1e-9)
	assert.Equal(t, int64(1), stats.Latency.MinNs)
	assert.Equal(t, int64(workers*perWorker), stats.Latency.MaxNs)
}
