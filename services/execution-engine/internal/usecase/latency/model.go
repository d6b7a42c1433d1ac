package latency

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	latencyv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/latency/v1"
)

const (
	// DefaultMaxLatency caps every sampled component.
	DefaultMaxLatency = 100 * time.Millisecond
	// maxResample bounds redraws of values above the cap before clamping.
	maxResample = 8
)

// Model draws feed and order latency from truncated log-normal
// distributions. The same seed always yields the same sequence.
type Model struct {
	mu     sync.Mutex
	rng    *rand.Rand
	preset latencyv1.Preset
	max    time.Duration
}

// Option configures the Model.
type Option func(*Model)

// WithMaxLatency sets the per-component cap.
func WithMaxLatency(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.max = d
		}
	}
}

// NewModel creates a seeded model for preset.
func NewModel(preset latencyv1.Preset, seed uint64, opts ...Option) *Model {
	m := &Model{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		preset: preset,
		max:    DefaultMaxLatency,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Preset returns the configured preset.
func (m *Model) Preset() latencyv1.Preset {
	return m.preset
}

// Sample draws feed latency first, then order latency.
func (m *Model) Sample() latencyv1.Sample {
	m.mu.Lock()
	defer m.mu.Unlock()

	return latencyv1.Sample{
		FeedLatency:  m.draw(m.preset.FeedMean),
		OrderLatency: m.draw(m.preset.OrderMean),
	}
}

// draw samples a log-normal whose arithmetic mean is mean. Values over the
// cap are redrawn a bounded number of times, then clamped.
func (m *Model) draw(mean time.Duration) time.Duration {
	if mean <= 0 {
		return 0
	}
	sigma := m.preset.Sigma
	if sigma <= 0 {
		return min(mean, m.max)
	}

	mu := math.Log(float64(mean)) - sigma*sigma/2
	for range maxResample {
		v := math.Exp(mu + sigma*m.rng.NormFloat64())
		if v <= float64(m.max) {
			return time.Duration(v)
		}
	}
	return m.max
}

// Fixed always returns the same sample. Useful for tests and replay.
type Fixed latencyv1.Sample

// Sample returns the fixed values.
func (f Fixed) Sample() latencyv1.Sample {
	return latencyv1.Sample(f)
}
