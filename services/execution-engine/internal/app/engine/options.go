package engine

import (
	"time"

	"github.com/i-onlabs/sigmax/pkg/util"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	latencyv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/latency/v1"
	queuev1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/queue/v1"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/latency"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/queueposition"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/statistics"
)

// Options holds configuration options for the execution engine.
type Options struct {
	Mode executionv1.Mode
	// Venue is required in live mode and ignored in simulated mode.
	Venue executionv1.Venue

	LatencyPreset latencyv1.Preset
	LatencySeed   uint64
	MaxLatency    time.Duration
	LatencyTarget time.Duration
	// LatencyModel replaces the seeded preset model when set.
	LatencyModel latencyv1.Model

	QueueModel           string
	PowerExponent        float64
	RiskAversion         float64
	QueueConsumptionRate float64
	MaxQueueWait         time.Duration
	// Estimator replaces the model-based estimator when set.
	Estimator queuev1.Estimator

	MarketOrderPolicy executionv1.MarketOrderPolicy
	HistoryCapacity   int
	// BookDepth bounds GetOrderBook; 0 returns every level.
	BookDepth int

	// Clock charges latency and stamps results. Share it with the venue;
	// a util.SimulatedClock makes runs with the same seed repeatable.
	Clock util.Clock
}

// DefaultEngineOptions returns default engine options
func DefaultEngineOptions() *Options {
	return &Options{
		Mode:                 executionv1.ModeSimulated,
		LatencyPreset:        latencyv1.Realistic,
		LatencySeed:          1,
		MaxLatency:           latency.DefaultMaxLatency,
		LatencyTarget:        statistics.DefaultLatencyTarget,
		QueueModel:           "power",
		PowerExponent:        queueposition.DefaultPowerExponent,
		RiskAversion:         queueposition.DefaultRiskAversion,
		QueueConsumptionRate: queueposition.DefaultConsumptionRate,
		MaxQueueWait:         queueposition.DefaultMaxWait,
		MarketOrderPolicy:    executionv1.PolicyIOC,
		HistoryCapacity:      statistics.DefaultHistoryCapacity,
		Clock:                util.RealClock{},
	}
}
