package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	redis_mock "github.com/i-onlabs/sigmax/pkg/redis/mock"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupStore(t *testing.T, channel string) (*Store, *redis_mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := redis_mock.NewMockClient(ctrl)
	client.EXPECT().Key(gomock.Any()).DoAndReturn(func(k string) string { return "sigmax:" + k }).AnyTimes()
	return NewSnapshotStore(client, time.Minute, channel, logger.NewNop()), client
}

func TestStore_Store(t *testing.T) {
	snap := orderbookv1.FromPairs("BTC-USD", [][2]float64{{9.5, 2}}, [][2]float64{{10.5, 1}})
	buf, err := json.Marshal(snap)
	require.NoError(t, err)

	t.Run("sets and publishes", func(t *testing.T) {
		store, client := setupStore(t, "book-snapshots")
		client.EXPECT().Set(gomock.Any(), "sigmax:book:BTC-USD", buf, time.Minute).Return(nil)
		client.EXPECT().Publish(gomock.Any(), "book-snapshots", buf).Return(int64(0), nil)

		require.NoError(t, store.Store(context.Background(), snap))
	})

	t.Run("publish failure is not fatal", func(t *testing.T) {
		store, client := setupStore(t, "book-snapshots")
		client.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), errors.NewErrorDetails("down", string(errors.RedisPublishError), "publish"))

		require.NoError(t, store.Store(context.Background(), snap))
	})

	t.Run("set failure", func(t *testing.T) {
		store, client := setupStore(t, "")
		client.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.NewErrorDetails("down", string(errors.RedisSetError), "set"))

		err := store.Store(context.Background(), snap)
		assert.ErrorContains(t, err, "snapshot_store_error")
	})

	t.Run("nil snapshot", func(t *testing.T) {
		store, _ := setupStore(t, "")
		assert.NoError(t, store.Store(context.Background(), nil))
	})
}

func TestStore_Load(t *testing.T) {
	snap := orderbookv1.FromPairs("BTC-USD", [][2]float64{{9.5, 2}}, nil)
	buf, err := json.Marshal(snap)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		data      string
		getErr    error
		expectNil bool
		expectErr bool
	}{
		{name: "found", data: string(buf)},
		{name: "missing", data: "", expectNil: true},
		{name: "corrupt", data: "{", expectNil: true, expectErr: true},
		{name: "redis error", getErr: errors.NewErrorDetails("down", string(errors.RedisGetError), "get"), expectNil: true, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, client := setupStore(t, "")
			client.EXPECT().Get(gomock.Any(), "sigmax:book:BTC-USD").Return(tc.data, tc.getErr)

			loaded, err := store.Load(context.Background(), "BTC-USD")
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tc.expectNil {
				assert.Nil(t, loaded)
				return
			}
			require.NotNil(t, loaded)
			assert.Equal(t, snap.Bids, loaded.Bids)
		})
	}
}
