package orderbookv1

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequest_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		req         PlaceOrderRequest
		wantFields  []string
		expectValid bool
	}{
		{
			name:        "valid limit",
			req:         PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeLimit, Price: 10, Quantity: 5},
			expectValid: true,
		},
		{
			name:        "valid market without price",
			req:         PlaceOrderRequest{Symbol: "BTC-USD", Side: SideSell, Type: OrderTypeMarket, Quantity: 1},
			expectValid: true,
		},
		{
			name:       "limit with zero price",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeLimit, Price: 0, Quantity: 5},
			wantFields: []string{"price"},
		},
		{
			name:       "limit with negative price",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeLimit, Price: -1, Quantity: 5},
			wantFields: []string{"price"},
		},
		{
			name:       "zero quantity",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeLimit, Price: 10},
			wantFields: []string{"quantity"},
		},
		{
			name:       "bad side and type",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: "hold", Type: "stop", Price: 10, Quantity: 1},
			wantFields: []string{"side", "type"},
		},
		{
			name:       "missing symbol",
			req:        PlaceOrderRequest{Side: SideBuy, Type: OrderTypeMarket, Quantity: 1},
			wantFields: []string{"symbol"},
		},
		{
			name:       "infinite quantity",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeMarket, Quantity: math.Inf(1)},
			wantFields: []string{"quantity"},
		},
		{
			name:       "unknown time in force",
			req:        PlaceOrderRequest{Symbol: "BTC-USD", Side: SideBuy, Type: OrderTypeMarket, Quantity: 1, TimeInForce: "DAY"},
			wantFields: []string{"timeInForce"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.expectValid {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, stderrors.Is(err, ErrInvalidOrder))

			var base *errors.BaseError
			require.True(t, stderrors.As(err, &base))
			assert.ElementsMatch(t, tc.wantFields, base.Fields())
		})
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("limit defaults to GTC", func(t *testing.T) {
		o := NewOrder("o-1", &PlaceOrderRequest{Symbol: "X", Side: SideBuy, Type: OrderTypeLimit, Price: 10, Quantity: 5})
		assert.Equal(t, GTC, o.TimeInForce)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, 5.0, o.Remaining)
		assert.Equal(t, 0.0, o.Filled())
	})

	t.Run("market defaults to IOC and drops price", func(t *testing.T) {
		o := NewOrder("o-2", &PlaceOrderRequest{Symbol: "X", Side: SideSell, Type: OrderTypeMarket, Price: 12, Quantity: 1})
		assert.Equal(t, IOC, o.TimeInForce)
		assert.Equal(t, 0.0, o.Price)
		assert.True(t, o.IsAsk())
	})

	t.Run("ids are unique and increasing", func(t *testing.T) {
		now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
		next := NewIDGenerator(1, now)
		a, b := next(), next()
		assert.NotEqual(t, a, b)
		assert.Less(t, a, b)
	})

	t.Run("same seed gives same ids", func(t *testing.T) {
		now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
		a, b := NewIDGenerator(7, now), NewIDGenerator(7, now)
		other := NewIDGenerator(8, now)
		for range 5 {
			id := a()
			assert.Equal(t, id, b())
			assert.NotEqual(t, id, other())
		}
	})
}
