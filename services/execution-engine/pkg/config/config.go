package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/i-onlabs/sigmax/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the application
type Config struct {
	Symbols  []string `env:"SYMBOLS,required" envSeparator:","`
	TickSize float64  `env:"TICK_SIZE" envDefault:"0.01"`
	Mode     string   `env:"MODE" envDefault:"simulated"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`

	EngineConfig         `envPrefix:"ENGINE_"`
	KafkaConfig          `envPrefix:"KAFKA_"`
	MatchPublisherConfig `envPrefix:"MATCH_PUBLISHER_"`
	Redis                redis.Config `envPrefix:"REDIS_"`
	SnapshotConfig       `envPrefix:"SNAPSHOT_"`

	WorkerQueueSize int    `env:"WORKER_QUEUE_SIZE" envDefault:"1024"`
	HealthAddr      string `env:"HEALTH_ADDR" envDefault:":8080"`
}

// EngineConfig holds the execution engine tuning.
type EngineConfig struct {
	LatencyPreset        string        `env:"LATENCY_PRESET" envDefault:"realistic"`
	LatencySeed          uint64        `env:"LATENCY_SEED" envDefault:"1"`
	MaxLatency           time.Duration `env:"MAX_LATENCY" envDefault:"100ms"`
	LatencyTarget        time.Duration `env:"LATENCY_TARGET" envDefault:"1ms"`
	HistoryCapacity      int           `env:"HISTORY_CAPACITY" envDefault:"1000"`
	QueueModel           string        `env:"QUEUE_MODEL" envDefault:"power"`
	PowerExponent        float64       `env:"POWER_EXPONENT" envDefault:"2"`
	RiskAversion         float64       `env:"RISK_AVERSION" envDefault:"0.7"`
	QueueConsumptionRate float64       `env:"QUEUE_CONSUMPTION_RATE" envDefault:"10"`
	MaxQueueWait         time.Duration `env:"MAX_QUEUE_WAIT" envDefault:"1h"`
	MarketOrderPolicy    string        `env:"MARKET_ORDER_POLICY" envDefault:"ioc"`
	BookDepth            int           `env:"BOOK_DEPTH" envDefault:"0"`
	Clock                string        `env:"CLOCK" envDefault:"real"`
	ClockStart           time.Time     `env:"CLOCK_START" envDefault:"2024-01-01T00:00:00Z"`
}

// KafkaConfig holds the configuration for the order command consumer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID"`
	Brokers []string `env:"BROKER,required" envSeparator:","`
}

// MatchPublisherConfig holds the configuration for the execution event producer.
type MatchPublisherConfig struct {
	Topic        string        `env:"TOPIC,required"`
	Brokers      []string      `env:"BROKER,required" envSeparator:","`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}

// SnapshotConfig holds the configuration for periodic book snapshots.
type SnapshotConfig struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"5s"`
	Channel  string        `env:"CHANNEL" envDefault:"book-snapshots"`
}
