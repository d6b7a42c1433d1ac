package matchpublisher

import (
	"context"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	matchpublisherv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/match-publisher/v1"
	"github.com/i-onlabs/sigmax/services/execution-engine/pkg/config"
	"github.com/segmentio/kafka-go"
)

// RequestIDHeader carries the request id of the command that caused an event.
const RequestIDHeader = "x-request-id"

var _ matchpublisherv1.Publisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher represents a Kafka Publisher for publishing execution events.
type Publisher struct {
	kafkaWriter messageWriter
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka publisher. Events are keyed by symbol so
// one symbol's events stay ordered within a partition.
func NewPublisher(cfg config.MatchPublisherConfig, log *logger.Logger) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: cfg.BatchTimeout,
	}

	return newPublisher(kafkaWriter, log)
}

func newPublisher(w messageWriter, log *logger.Logger) *Publisher {
	return &Publisher{
		kafkaWriter: w,
		logger:      log,
	}
}

// PublishEvent publishes an event to the Kafka topic.
func (p *Publisher) PublishEvent(ctx context.Context, event *matchpublisherv1.Event) error {
	value := matchpublisherv1.ToBytes(event)
	if value == nil {
		return errors.NewErrorDetails("failed to encode event", string(errors.KafkaPublishError), "event")
	}

	msg := kafka.Message{
		Key:   []byte(event.Symbol),
		Value: value,
	}
	if id := event.RequestID; id != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: RequestIDHeader, Value: []byte(id)})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		ctx = util.WithRequestID(ctx, event.RequestID)
		p.logger.ErrorContext(ctx, err,
			logger.NewField("eventType", event.Type),
			logger.NewField("orderID", event.OrderID),
		)
		return errors.NewTracer(string(errors.KafkaPublishError)).Wrap(err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
