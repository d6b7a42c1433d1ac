package redis

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger  *logger.Logger
	config  *Config
	cmdable redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

// NewClientFromUniversal wraps an already connected go-redis client.
func NewClientFromUniversal(logger *logger.Logger, config *Config, rc redis.UniversalClient) Client {
	return &client{
		logger:  logger,
		config:  config,
		cmdable: rc,
	}
}

func (c *client) validate() error {
	switch {
	case c.config == nil:
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConfigError), "connect")
	case len(c.config.Addrs) == 0:
		return errors.NewErrorDetails("Redis addresses are empty", string(errors.RedisConfigError), "addrs")
	case c.config.Mode != Standalone && c.config.Mode != Cluster:
		return errors.NewErrorDetails("Invalid Redis mode", string(errors.RedisConfigError), "mode")
	case c.config.ConnectTimeout <= 0:
		return errors.NewErrorDetails("Invalid Redis connect timeout", string(errors.RedisConfigError), "connect_timeout")
	case c.config.PoolSize <= 0:
		return errors.NewErrorDetails("Invalid Redis pool size", string(errors.RedisConfigError), "pool_size")
	case c.config.MaxIdleConns < 0:
		return errors.NewErrorDetails("Invalid Redis max idle connections", string(errors.RedisConfigError), "max_idle_conns")
	case c.config.MaxRetries < 0:
		return errors.NewErrorDetails("Invalid Redis max retries", string(errors.RedisConfigError), "max_retries")
	case c.config.MinRetryBackoff < 0 || c.config.MaxRetryBackoff < 0:
		return errors.NewErrorDetails("Invalid Redis retry backoff", string(errors.RedisConfigError), "retry_backoff")
	}
	return nil
}

func (c *client) Connect(ctx context.Context) error {
	if err := c.validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Cluster:
		c.cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	default:
		c.cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewTracer(string(errors.RedisConnectionError)).Wrap(err)
	}
	return nil
}

func (c *client) Reconnect(ctx context.Context) bool {
	baseDelay := c.config.MinRetryBackoff
	maxDelay := c.config.MaxRetryBackoff

	for i := range c.config.ReconnectMaxRetries {
		backoff := min(baseDelay*time.Duration(math.Pow(2, float64(i))), maxDelay)
		totalDelay := backoff + time.Duration(rand.IntN(1000))*time.Millisecond

		c.logger.Info("Reconnecting to Redis",
			logger.NewField("attempt", i+1),
			logger.NewField("delay", totalDelay),
		)

		select {
		case <-ctx.Done():
			c.logger.Info("Reconnect cancelled", logger.NewField("reason", ctx.Err()))
			return false
		case <-time.After(totalDelay):
			connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := c.Connect(connectCtx)
			cancel()
			if err == nil {
				c.logger.Info("Reconnected to Redis successfully", logger.NewField("attempt", i+1))
				return true
			}
			c.logger.Error(errors.TracerFromError(err), logger.NewField("attempt", i+1))
		}
	}

	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", string(errors.RedisDisconnectionError), "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

// Key prefixes k with the configured namespace.
func (c *client) Key(k string) string {
	if c.config == nil {
		return k
	}
	return c.config.PrefixKey + k
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get")
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set")
	}
	return nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	deleted, err := c.cmdable.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to delete keys from Redis", string(errors.RedisDelError), "del")
	}
	return deleted, nil
}

// Publish returns the number of subscribers that received message. Zero
// subscribers is not an error.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	published, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish message to Redis", string(errors.RedisPublishError), "publish")
	}
	return published, nil
}
