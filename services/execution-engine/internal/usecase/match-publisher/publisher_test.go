package matchpublisher

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/i-onlabs/sigmax/pkg/logger"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	matchpublisherv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/match-publisher/v1"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, logger.NewNop())

	event := matchpublisherv1.NewExecutionEvent("req-1", &executionv1.ExecutionResult{OrderID: "o-1", Symbol: "ETH-USD"})
	require.NoError(t, p.PublishEvent(context.Background(), event))

	require.Len(t, w.written, 1)
	msg := w.written[0]
	assert.Equal(t, "ETH-USD", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, RequestIDHeader, msg.Headers[0].Key)
	assert.Equal(t, "req-1", string(msg.Headers[0].Value))

	decoded := matchpublisherv1.FromBytes(msg.Value)
	require.NotNil(t, decoded)
	assert.Equal(t, "o-1", decoded.OrderID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_PublishEventError(t *testing.T) {
	w := &fakeWriter{err: stderrors.New("leader not available")}
	p := newPublisher(w, logger.NewNop())

	err := p.PublishEvent(context.Background(), matchpublisherv1.NewCancelEvent("", "X", "o-1", 1, 0))
	require.Error(t, err)
	assert.ErrorContains(t, err, "leader not available")
}
