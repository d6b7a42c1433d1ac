package config

import (
	"fmt"
	"strings"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/app/engine"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	latencyv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/latency/v1"
)

// ToEngineOptions maps the configuration onto engine options. The live
// venue is not configurable here and must be set by the caller.
func (c *Config) ToEngineOptions() (*engine.Options, error) {
	preset, ok := latencyv1.PresetByName(c.LatencyPreset)
	if !ok {
		return nil, configError("ENGINE_LATENCY_PRESET", c.LatencyPreset)
	}

	mode := executionv1.Mode(strings.ToLower(c.Mode))
	if mode != executionv1.ModeSimulated && mode != executionv1.ModeLive {
		return nil, configError("MODE", c.Mode)
	}

	policy := executionv1.MarketOrderPolicy(strings.ToLower(c.MarketOrderPolicy))
	if policy != executionv1.PolicyIOC && policy != executionv1.PolicyFOK {
		return nil, configError("ENGINE_MARKET_ORDER_POLICY", c.MarketOrderPolicy)
	}

	options := engine.DefaultEngineOptions()
	options.Mode = mode
	options.LatencyPreset = preset
	options.LatencySeed = c.LatencySeed
	options.MaxLatency = c.MaxLatency
	options.LatencyTarget = c.LatencyTarget
	options.HistoryCapacity = c.HistoryCapacity
	options.QueueModel = c.QueueModel
	options.PowerExponent = c.PowerExponent
	options.RiskAversion = c.RiskAversion
	options.QueueConsumptionRate = c.QueueConsumptionRate
	options.MaxQueueWait = c.MaxQueueWait
	options.MarketOrderPolicy = policy
	options.BookDepth = c.BookDepth

	switch strings.ToLower(c.Clock) {
	case "real":
		options.Clock = util.RealClock{}
	case "simulated":
		options.Clock = util.NewSimulatedClock(c.ClockStart)
	default:
		return nil, configError("ENGINE_CLOCK", c.Clock)
	}
	return options, nil
}

// LoggerLevel returns the configured log level.
func (c *Config) LoggerLevel() logger.Level {
	return logger.Level(c.LogLevel)
}

func configError(key, value string) error {
	return errors.NewErrorDetailsWithObject(fmt.Sprintf("invalid value %q for %s", value, key), string(errors.GeneralBadRequestError), key, value)
}
