package matching

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupEngine(t *testing.T, symbols ...string) (*Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	seq := 0
	var mu sync.Mutex
	e := NewEngine(logger.FromZap(zap.New(core)),
		WithClock(util.InstantClock{}),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	for _, s := range symbols {
		require.NoError(t, e.RegisterSymbol(s, 0.01))
	}
	return e, logs
}

func order(symbol string, side orderbookv1.Side, price, qty float64) *orderbookv1.Order {
	o := &orderbookv1.Order{Symbol: symbol, Side: side, Quantity: qty, Type: orderbookv1.OrderTypeMarket}
	if price > 0 {
		o.Type = orderbookv1.OrderTypeLimit
		o.Price = price
	}
	return o
}

func TestEngine_RegisterSymbol(t *testing.T) {
	e, logs := setupEngine(t, "BTC-USD")

	err := e.RegisterSymbol("BTC-USD", 0.01)
	assert.True(t, stderrors.Is(err, orderbookv1.ErrDuplicateSymbol))

	assert.Error(t, e.RegisterSymbol("", 0.01))
	assert.Error(t, e.RegisterSymbol("ETH-USD", 0))

	require.NoError(t, e.RegisterSymbol("ETH-USD", 0.1))
	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, e.Symbols())
	assert.Equal(t, 2, logs.FilterMessage("Symbol registered").Len())
}

func TestEngine_UnknownSymbol(t *testing.T) {
	e, _ := setupEngine(t, "BTC-USD")
	ctx := context.Background()

	_, err := e.Submit(ctx, order("DOGE-USD", orderbookv1.SideBuy, 1, 1))
	assert.True(t, stderrors.Is(err, orderbookv1.ErrUnknownSymbol))

	_, err = e.Cancel(ctx, "DOGE-USD", "x")
	assert.True(t, stderrors.Is(err, orderbookv1.ErrUnknownSymbol))

	_, err = e.Snapshot(ctx, "DOGE-USD", 0)
	assert.True(t, stderrors.Is(err, orderbookv1.ErrUnknownSymbol))

	assert.True(t, stderrors.Is(e.Check(ctx, order("DOGE-USD", orderbookv1.SideBuy, 1, 1)), orderbookv1.ErrUnknownSymbol))
}

func TestEngine_SubmitAndCancel(t *testing.T) {
	e, _ := setupEngine(t, "BTC-USD")
	ctx := context.Background()

	res, err := e.Submit(ctx, order("BTC-USD", orderbookv1.SideSell, 10.0, 5))
	require.NoError(t, err)
	assert.Equal(t, "id-1", res.Order.ID)
	assert.Equal(t, orderbookv1.StatusResting, res.Order.Status)

	res, err = e.Submit(ctx, order("BTC-USD", orderbookv1.SideBuy, 0, 3))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "id-1", res.Trades[0].MakerOrderID)

	maker, found, err := e.Order(ctx, "BTC-USD", "id-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2.0, maker.Remaining)
	assert.Equal(t, 1, e.ActiveOrderCount())

	ok, err := e.Cancel(ctx, "BTC-USD", "id-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Cancel(ctx, "BTC-USD", "id-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, e.ActiveOrderCount())
}

func TestEngine_CheckDoesNotMutate(t *testing.T) {
	e, _ := setupEngine(t, "BTC-USD")
	ctx := context.Background()

	assert.NoError(t, e.Check(ctx, order("BTC-USD", orderbookv1.SideBuy, 10.0, 1)))
	err := e.Check(ctx, order("BTC-USD", orderbookv1.SideBuy, 10.005, 1))
	assert.True(t, stderrors.Is(err, orderbookv1.ErrInvalidOrder))

	snap, err := e.Snapshot(ctx, "BTC-USD", 0)
	require.NoError(t, err)
	assert.Empty(t, snap.Bids)
}

func TestEngine_CheckWithoutIDIgnoresExistingIDs(t *testing.T) {
	e, _ := setupEngine(t, "BTC-USD")
	ctx := context.Background()

	resting := order("BTC-USD", orderbookv1.SideSell, 11.0, 1)
	resting.ID = "taken"
	_, err := e.Submit(ctx, resting)
	require.NoError(t, err)

	assert.NoError(t, e.Check(ctx, order("BTC-USD", orderbookv1.SideBuy, 10.0, 1)))

	dup := order("BTC-USD", orderbookv1.SideBuy, 10.0, 1)
	dup.ID = "taken"
	assert.True(t, stderrors.Is(e.Check(ctx, dup), orderbookv1.ErrInvalidOrder))
}

func TestEngine_HaltIsolatesSymbol(t *testing.T) {
	e, logs := setupEngine(t, "X", "Y")
	ctx := context.Background()

	_, err := e.Submit(ctx, order("X", orderbookv1.SideBuy, 10.0, 1))
	require.NoError(t, err)
	_, err = e.Submit(ctx, order("Y", orderbookv1.SideBuy, 10.0, 1))
	require.NoError(t, err)

	require.NoError(t, e.HaltSymbol(ctx, "X", "operator request"))
	assert.True(t, e.Halted("X"))
	assert.False(t, e.Halted("Y"))
	assert.Equal(t, 1, logs.FilterMessage("Symbol halted").Len())

	_, err = e.Submit(ctx, order("X", orderbookv1.SideSell, 10.0, 1))
	assert.True(t, stderrors.Is(err, orderbookv1.ErrSymbolHalted))

	res, err := e.Submit(ctx, order("Y", orderbookv1.SideSell, 10.0, 1))
	require.NoError(t, err)
	assert.Len(t, res.Trades, 1)
}

func TestEngine_ParallelSymbols(t *testing.T) {
	symbols := []string{"A", "B", "C", "D"}
	e, _ := setupEngine(t, symbols...)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, s := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			for i := range 200 {
				side := orderbookv1.SideBuy
				price := 10.0
				if i%2 == 1 {
					side = orderbookv1.SideSell
					price = 10.01
				}
				_, err := e.Submit(ctx, order(symbol, side, price, 1))
				assert.NoError(t, err)
			}
		}(s)
	}
	wg.Wait()

	for _, s := range symbols {
		book, err := e.Book(s)
		require.NoError(t, err)
		assert.NoError(t, book.Validate())
		assert.Equal(t, 200, book.Len())
	}
	assert.Equal(t, 800, e.ActiveOrderCount())
}
