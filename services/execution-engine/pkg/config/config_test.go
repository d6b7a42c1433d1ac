package config

import (
	"os"
	"testing"
	"time"

	"github.com/i-onlabs/sigmax/pkg/util"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	latencyv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/latency/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SYMBOLS", "BTC-USD,ETH-USD")
	t.Setenv("KAFKA_TOPIC", "orders")
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("MATCH_PUBLISHER_TOPIC", "executions")
	t.Setenv("MATCH_PUBLISHER_BROKER", "localhost:9092,localhost:9093")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, cfg.Symbols)
	assert.Equal(t, 0.01, cfg.TickSize)
	assert.Equal(t, "simulated", cfg.Mode)
	assert.Equal(t, "realistic", cfg.LatencyPreset)
	assert.Equal(t, 100*time.Millisecond, cfg.MaxLatency)
	assert.Equal(t, time.Hour, cfg.MaxQueueWait)
	assert.Equal(t, 1000, cfg.HistoryCapacity)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.MatchPublisherConfig.Brokers)
	assert.Equal(t, 5*time.Second, cfg.SnapshotConfig.Interval)
	assert.Equal(t, "book-snapshots", cfg.SnapshotConfig.Channel)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, 1024, cfg.WorkerQueueSize)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SYMBOLS", "")
	require.NoError(t, os.Unsetenv("SYMBOLS"))
	cfg := &Config{}
	assert.Error(t, Load(cfg))
}

func TestConfig_ToEngineOptions(t *testing.T) {
	testCases := []struct {
		name      string
		configure func(*Config)
		expectErr bool
		check     func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c *Config) {
				options, err := c.ToEngineOptions()
				require.NoError(t, err)
				assert.Equal(t, executionv1.ModeSimulated, options.Mode)
				assert.Equal(t, latencyv1.Realistic, options.LatencyPreset)
				assert.Equal(t, executionv1.PolicyIOC, options.MarketOrderPolicy)
				assert.Equal(t, util.RealClock{}, options.Clock)
			},
		},
		{
			name: "simulated clock starts at CLOCK_START",
			configure: func(c *Config) {
				c.Clock = "Simulated"
				c.ClockStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			},
			check: func(t *testing.T, c *Config) {
				options, err := c.ToEngineOptions()
				require.NoError(t, err)
				clock, ok := options.Clock.(*util.SimulatedClock)
				require.True(t, ok)
				assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), clock.Now())
			},
		},
		{
			name: "fok and pessimistic",
			configure: func(c *Config) {
				c.MarketOrderPolicy = "FOK"
				c.LatencyPreset = "pessimistic"
				c.LatencySeed = 9
			},
			check: func(t *testing.T, c *Config) {
				options, err := c.ToEngineOptions()
				require.NoError(t, err)
				assert.Equal(t, executionv1.PolicyFOK, options.MarketOrderPolicy)
				assert.Equal(t, latencyv1.Pessimistic, options.LatencyPreset)
				assert.Equal(t, uint64(9), options.LatencySeed)
			},
		},
		{name: "unknown preset", configure: func(c *Config) { c.LatencyPreset = "lan" }, expectErr: true},
		{name: "unknown mode", configure: func(c *Config) { c.Mode = "paper" }, expectErr: true},
		{name: "unknown policy", configure: func(c *Config) { c.MarketOrderPolicy = "gtc" }, expectErr: true},
		{name: "unknown clock", configure: func(c *Config) { c.Clock = "wall" }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			cfg := &Config{}
			require.NoError(t, Load(cfg))
			if tc.configure != nil {
				tc.configure(cfg)
			}
			if tc.expectErr {
				_, err := cfg.ToEngineOptions()
				assert.Error(t, err)
				return
			}
			tc.check(t, cfg)
		})
	}
}
