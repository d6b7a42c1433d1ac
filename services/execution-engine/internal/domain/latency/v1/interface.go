package latencyv1

import (
	"strings"
	"time"
)

// Sample is one draw of simulated delays.
type Sample struct {
	// FeedLatency is charged before the engine sees a book snapshot.
	FeedLatency time.Duration `json:"feedLatencyNs"`
	// OrderLatency is charged between the decision and the venue call.
	OrderLatency time.Duration `json:"orderLatencyNs"`
}

// Total is the full simulated delay of the sample.
func (s Sample) Total() time.Duration {
	return s.FeedLatency + s.OrderLatency
}

// Model samples latency.
type Model interface {
	Sample() Sample
}

// Preset is the mean and spread of both latency components.
type Preset struct {
	Name      string        `json:"name"`
	FeedMean  time.Duration `json:"feedMean"`
	OrderMean time.Duration `json:"orderMean"`
	// Sigma is the log-space standard deviation; 0 makes draws constant.
	Sigma float64 `json:"sigma"`
}

var (
	// Realistic approximates a co-located venue over a busy network.
	Realistic = Preset{Name: "realistic", FeedMean: 500 * time.Microsecond, OrderMean: time.Millisecond, Sigma: 0.5}
	// Optimistic is a quiet, well-tuned path.
	Optimistic = Preset{Name: "optimistic", FeedMean: 50 * time.Microsecond, OrderMean: 100 * time.Microsecond, Sigma: 0.25}
	// Pessimistic is a congested retail path with fat tails.
	Pessimistic = Preset{Name: "pessimistic", FeedMean: 5 * time.Millisecond, OrderMean: 20 * time.Millisecond, Sigma: 0.8}
)

// PresetByName resolves a preset name case-insensitively.
func PresetByName(name string) (Preset, bool) {
	switch strings.ToLower(name) {
	case Realistic.Name:
		return Realistic, true
	case Optimistic.Name:
		return Optimistic, true
	case Pessimistic.Name:
		return Pessimistic, true
	}
	return Preset{}, false
}
