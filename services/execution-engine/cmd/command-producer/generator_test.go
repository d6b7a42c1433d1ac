package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
)

func TestGenerator(t *testing.T) {
	tick := orderbookv1.MustTickSize(0.01)

	t.Run("Commands are valid and priced on the tick", func(t *testing.T) {
		gen, ok := newGenerator(7, []string{"X", "Y"}, tick, 100, 50, 0.3, 5)
		require.True(t, ok)

		for i := 0; i < 500; i++ {
			cmd := gen.next(i)
			require.NoError(t, cmd.Validate())
			require.NoError(t, cmd.Order.Validate())
			assert.Equal(t, orderreaderv1.CommandPlace, cmd.Type)
			assert.Equal(t, []string{"X", "Y"}[i%2], cmd.Symbol)
			assert.Greater(t, cmd.Order.Quantity, 0.0)
			assert.LessOrEqual(t, cmd.Order.Quantity, 5.0)

			if cmd.Order.Type == orderbookv1.OrderTypeMarket {
				assert.Zero(t, cmd.Order.Price)
				continue
			}
			ticks, onTick := tick.ToTicks(cmd.Order.Price)
			require.True(t, onTick, "price %v", cmd.Order.Price)
			if cmd.Order.Side == orderbookv1.SideBuy {
				assert.LessOrEqual(t, ticks, int64(10000))
			} else {
				assert.Greater(t, ticks, int64(10000))
			}
		}
	})

	t.Run("Same seed gives same commands", func(t *testing.T) {
		a, _ := newGenerator(3, []string{"X"}, tick, 100, 50, 0.3, 5)
		b, _ := newGenerator(3, []string{"X"}, tick, 100, 50, 0.3, 5)
		for i := 0; i < 50; i++ {
			assert.Equal(t, a.next(i), b.next(i))
		}
	})

	t.Run("Rejects bad parameters", func(t *testing.T) {
		_, ok := newGenerator(1, []string{"X"}, tick, 100.005, 50, 0.3, 5)
		assert.False(t, ok)
		_, ok = newGenerator(1, []string{"X"}, tick, 0.1, 50, 0.3, 5)
		assert.False(t, ok)
		_, ok = newGenerator(1, nil, tick, 100, 50, 0.3, 5)
		assert.False(t, ok)
	})
}

func TestSummarize(t *testing.T) {
	commands := []*orderreaderv1.Command{
		{Type: orderreaderv1.CommandPlace, Order: &orderbookv1.PlaceOrderRequest{Type: orderbookv1.OrderTypeMarket, Side: orderbookv1.SideBuy}},
		{Type: orderreaderv1.CommandPlace, Order: &orderbookv1.PlaceOrderRequest{Type: orderbookv1.OrderTypeLimit, Side: orderbookv1.SideSell}},
		{Type: orderreaderv1.CommandCancelAll, Symbol: "X"},
	}

	fields := summarize(commands)

	got := make(map[string]any, len(fields))
	for _, f := range fields {
		got[f.Key] = f.Value
	}
	assert.Equal(t, map[string]any{"total": 3, "market": 1, "limit": 1, "buy": 1, "sell": 1}, got)
}
