package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/redis"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	snapshotv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/snapshot/v1"
)

const keyPrefix = "book:"

var _ snapshotv1.Store = (*Store)(nil)

// Store keeps the latest book snapshot of every symbol in Redis and
// announces each one on a pub/sub channel.
type Store struct {
	redisclient redis.Client
	ttl         time.Duration
	channel     string
	logger      *logger.Logger
}

// NewSnapshotStore creates a Store. A zero ttl keeps snapshots forever; an
// empty channel disables publication.
func NewSnapshotStore(redisclient redis.Client, ttl time.Duration, channel string, log *logger.Logger) *Store {
	return &Store{
		redisclient: redisclient,
		ttl:         ttl,
		channel:     channel,
		logger:      log,
	}
}

func (s *Store) key(symbol string) string {
	return s.redisclient.Key(keyPrefix + symbol)
}

// Store stores the snapshot in Redis.
func (s *Store) Store(ctx context.Context, snapshot *orderbookv1.BookSnapshot) error {
	if snapshot == nil {
		return nil
	}

	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("symbol", snapshot.Symbol))
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key(snapshot.Symbol), buf, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("symbol", snapshot.Symbol),
			logger.NewField("action", "store snapshot"),
		)
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	if s.channel != "" {
		if _, err := s.redisclient.Publish(ctx, s.channel, buf); err != nil {
			s.logger.WarnContext(ctx, "Snapshot publish failed",
				logger.NewField("symbol", snapshot.Symbol),
				logger.NewField("channel", s.channel),
				logger.NewField("error", err.Error()),
			)
		}
	}

	s.logger.DebugContext(ctx, "Snapshot stored",
		logger.NewField("symbol", snapshot.Symbol),
		logger.NewField("sequence", snapshot.Sequence),
	)
	return nil
}

// Load loads the snapshot of symbol from Redis.
func (s *Store) Load(ctx context.Context, symbol string) (*orderbookv1.BookSnapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key(symbol))
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("symbol", symbol),
			logger.NewField("action", "load snapshot"),
		)
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.NewField("symbol", symbol))
		return nil, nil
	}

	var snapshot orderbookv1.BookSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.NewField("symbol", symbol),
			logger.NewField("action", "unmarshal snapshot"),
		)
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
