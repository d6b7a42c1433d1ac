package orderreader

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages  []kafka.Message
	fetchErr  error
	offset    int64
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.fetchErr != nil {
		return kafka.Message{}, f.fetchErr
	}
	if len(f.messages) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) SetOffset(offset int64) error {
	f.offset = offset
	return nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestReader_ReadMessage(t *testing.T) {
	testCases := []struct {
		name         string
		value        string
		expectedType orderreaderv1.CommandType
		expectedCode string
		expectDecode bool
	}{
		{
			name:         "place command",
			value:        `{"type":"place","requestID":"r-1","symbol":"BTC-USD","order":{"side":"buy","type":"limit","price":10,"quantity":1}}`,
			expectedType: orderreaderv1.CommandPlace,
		},
		{
			name:         "cancel all",
			value:        `{"type":"cancel_all","symbol":"BTC-USD"}`,
			expectedType: orderreaderv1.CommandCancelAll,
		},
		{
			name:         "malformed json",
			value:        `{"type":`,
			expectedCode: string(errors.KafkaReadError),
			expectDecode: true,
		},
		{
			name:         "cancel without id",
			value:        `{"type":"cancel","symbol":"BTC-USD"}`,
			expectedCode: string(errors.InvalidOrderError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeReader{messages: []kafka.Message{{Offset: 7, Value: []byte(tc.value)}}}
			r := newReader(fake, false, logger.NewNop())

			msg, cmd, err := r.ReadMessage(context.Background())
			assert.Equal(t, int64(7), msg.Offset)

			if tc.expectedCode != "" {
				require.Error(t, err)
				assert.Nil(t, cmd)
				if tc.expectDecode {
					assert.Contains(t, err.Error(), tc.expectedCode)
				} else {
					assert.True(t, errors.ErrorCodeEquals(err, tc.expectedCode))
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, tc.expectedType, cmd.Type)
			assert.Equal(t, int64(7), cmd.Offset)
			if cmd.Type == orderreaderv1.CommandPlace {
				assert.Equal(t, "BTC-USD", cmd.Order.Symbol)
				assert.Equal(t, orderbookv1.SideBuy, cmd.Order.Side)
			}
		})
	}
}

func TestReader_FetchError(t *testing.T) {
	fake := &fakeReader{fetchErr: stderrors.New("broker down")}
	r := newReader(fake, false, logger.NewNop())

	_, cmd, err := r.ReadMessage(context.Background())
	assert.Nil(t, cmd)
	assert.ErrorContains(t, err, "broker down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = newReader(&fakeReader{}, false, logger.NewNop()).ReadMessage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_OffsetsAndCommits(t *testing.T) {
	t.Run("partition reader", func(t *testing.T) {
		fake := &fakeReader{}
		r := newReader(fake, false, logger.NewNop())

		require.NoError(t, r.SetOffset(42))
		assert.Equal(t, int64(42), fake.offset)

		require.NoError(t, r.CommitMessages(context.Background(), kafka.Message{Offset: 1}))
		assert.Empty(t, fake.committed)
	})

	t.Run("group reader", func(t *testing.T) {
		fake := &fakeReader{offset: -1}
		r := newReader(fake, true, logger.NewNop())

		require.NoError(t, r.SetOffset(42))
		assert.Equal(t, int64(-1), fake.offset)

		require.NoError(t, r.CommitMessages(context.Background(), kafka.Message{Offset: 1}))
		assert.Len(t, fake.committed, 1)

		require.NoError(t, r.Close())
		assert.True(t, fake.closed)
	})
}
