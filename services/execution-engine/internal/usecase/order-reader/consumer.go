package orderreader

import (
	"context"
	"encoding/json"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
	"github.com/i-onlabs/sigmax/services/execution-engine/pkg/config"
	"github.com/segmentio/kafka-go"
)

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// messageReader is the part of *kafka.Reader the Reader uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	SetOffset(offset int64) error
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader represents a Kafka Reader for consuming commands from the order topic.
type Reader struct {
	kafkaReader messageReader
	grouped     bool
	logger      *logger.Logger
}

// NewReader creates a new Kafka reader for consuming messages from the order topic.
// Without a group id it reads partition 0 and offsets are managed by the caller.
func NewReader(cfg config.KafkaConfig, log *logger.Logger) *Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	}
	if cfg.GroupID == "" {
		readerConfig.Partition = 0
	}

	return newReader(kafka.NewReader(readerConfig), cfg.GroupID != "", log)
}

func newReader(r messageReader, grouped bool, log *logger.Logger) *Reader {
	return &Reader{
		kafkaReader: r,
		grouped:     grouped,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err, logger.NewField("operation", operation))
}

// SetOffset sets the offset for the Kafka reader. Group readers track
// offsets in the broker, so it is a no-op for them.
func (r *Reader) SetOffset(offset int64) error {
	if r.grouped {
		return nil
	}
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(context.Background(), err, "SetOffset")
		return errors.NewTracer(string(errors.KafkaReadError)).Wrap(err)
	}
	return nil
}

// ReadMessage fetches a message and decodes it as a Command.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.Command, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return kafka.Message{}, nil, ctx.Err()
		}
		r.logError(ctx, err, "ReadMessage")
		return kafka.Message{}, nil, errors.NewTracer(string(errors.KafkaReadError)).Wrap(err)
	}

	var cmd orderreaderv1.Command
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		r.logError(ctx, err, "UnmarshalCommand")
		return msg, nil, errors.NewTracer(string(errors.KafkaReadError)).Wrap(err)
	}
	if err := cmd.Validate(); err != nil {
		r.logError(ctx, err, "ValidateCommand")
		return msg, nil, err
	}
	cmd.Offset = msg.Offset

	r.logger.DebugContext(ctx, "ReadMessage",
		logger.NewField("type", cmd.Type),
		logger.NewField("symbol", cmd.Symbol),
		logger.NewField("requestID", cmd.RequestID),
		logger.NewField("offset", msg.Offset),
	)

	return msg, &cmd, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing. Without a
// consumer group there is nothing to commit.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if !r.grouped || len(msgs) == 0 {
		return nil
	}
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(ctx, err, "CommitMessages")
		return errors.NewTracer(string(errors.KafkaReadError)).Wrap(err)
	}
	return nil
}
