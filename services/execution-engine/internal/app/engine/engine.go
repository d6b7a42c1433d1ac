package engine

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
	latencyv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/latency/v1"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	queuev1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/queue/v1"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/latency"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/queueposition"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/statistics"
)

var _ executionv1.Executor = (*Engine)(nil)

// Engine executes orders against a venue with simulated latency and keeps
// execution statistics.
type Engine struct {
	venue     executionv1.Venue
	mode      executionv1.Mode
	latency   latencyv1.Model
	estimator queuev1.Estimator
	policy    executionv1.MarketOrderPolicy
	clock     util.Clock
	depth     int
	logger    *logger.Logger

	stats   *statistics.Statistics
	history *statistics.History

	// orders maps ids of orders this engine rested to their symbol.
	orders sync.Map

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// NewEngine creates an engine in simulated mode with default options.
func NewEngine(simulated executionv1.Venue, log *logger.Logger) (*Engine, error) {
	return NewEngineWithOptions(simulated, log, DefaultEngineOptions())
}

// NewEngineWithOptions creates an engine. simulated is the venue used in
// simulated mode; live mode uses options.Venue instead.
func NewEngineWithOptions(simulated executionv1.Venue, log *logger.Logger, options *Options) (*Engine, error) {
	if options == nil {
		options = DefaultEngineOptions()
	}

	venue := simulated
	if options.Mode == executionv1.ModeLive {
		venue = options.Venue
		if venue == nil {
			return nil, executionv1.ErrLiveVenueMissing
		}
	}
	if venue == nil {
		return nil, errors.NewErrorDetails("simulated venue is nil", string(errors.GeneralBadRequestError), "venue")
	}

	estimator := options.Estimator
	if estimator == nil {
		model, err := queueposition.ModelByName(options.QueueModel, options.PowerExponent, options.RiskAversion)
		if err != nil {
			return nil, err
		}
		estimator = queueposition.NewEstimator(model,
			queueposition.WithConsumptionRate(options.QueueConsumptionRate),
			queueposition.WithMaxWait(options.MaxQueueWait),
		)
	}

	model := options.LatencyModel
	if model == nil {
		model = latency.NewModel(options.LatencyPreset, options.LatencySeed, latency.WithMaxLatency(options.MaxLatency))
	}

	clock := options.Clock
	if clock == nil {
		clock = util.RealClock{}
	}

	policy := options.MarketOrderPolicy
	if policy == "" {
		policy = executionv1.PolicyIOC
	}

	mode := options.Mode
	if mode == "" {
		mode = executionv1.ModeSimulated
	}

	e := &Engine{
		venue:     venue,
		mode:      mode,
		latency:   model,
		estimator: estimator,
		policy:    policy,
		clock:     clock,
		depth:     options.BookDepth,
		logger:    log,
		stats:     statistics.New(options.LatencyTarget),
		history:   statistics.NewHistory(options.HistoryCapacity),
	}

	e.logger.Info("Execution engine created",
		logger.NewField("mode", mode),
		logger.NewField("marketOrderPolicy", policy),
	)
	return e, nil
}

// Mode returns where orders are matched.
func (e *Engine) Mode() executionv1.Mode {
	return e.mode
}

// ExecuteOrder validates req, charges simulated latency and submits the
// order to the venue. snapshot is the caller's view of the book and may be
// nil. Rejected orders leave statistics untouched.
func (e *Engine) ExecuteOrder(ctx context.Context, req *orderbookv1.PlaceOrderRequest, snapshot *orderbookv1.BookSnapshot) (*executionv1.ExecutionResult, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.inflight.Done()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx = util.WithSymbol(ctx, req.Symbol)

	order := orderbookv1.NewOrder("", req)
	if order.Type == orderbookv1.OrderTypeMarket && req.TimeInForce == "" {
		order.TimeInForce = e.policy.TimeInForce()
	}
	if err := e.venue.Check(ctx, order); err != nil {
		return nil, err
	}

	sample := e.latency.Sample()

	// The snapshot only becomes visible once the feed delay has elapsed.
	if err := util.Wait(ctx, e.clock, sample.FeedLatency); err != nil {
		return nil, err
	}

	var pre *queuev1.Estimate
	if order.Type == orderbookv1.OrderTypeLimit && snapshot != nil {
		est := e.estimator.Estimate(order, snapshot)
		pre = &est
	}
	reference := e.referencePrice(ctx, order, snapshot)

	if err := util.Wait(ctx, e.clock, sample.OrderLatency); err != nil {
		return nil, err
	}

	res, err := e.venue.Submit(ctx, order)
	if err != nil {
		if stderrors.Is(err, executionv1.ErrInvariantViolation) || stderrors.Is(err, executionv1.ErrSymbolHalted) {
			e.logger.ErrorContext(ctx, err, logger.NewField("action", "submit_order"))
		}
		return nil, err
	}

	result := e.buildResult(req, res, sample, reference, pre)

	e.stats.RecordExecution(result)
	e.history.Add(*result)
	if res.Rested() {
		e.orders.Store(res.Order.ID, res.Order.Symbol)
	}
	e.pruneMakers(ctx, res.Trades)

	e.logger.DebugContext(ctx, "Order executed",
		logger.NewField("orderID", result.OrderID),
		logger.NewField("status", result.Status),
		logger.NewField("executedQuantity", result.ExecutedQuantity),
		logger.NewField("executedPrice", result.ExecutedPrice),
		logger.NewField("latencyNs", result.LatencyNs),
	)
	return result, nil
}

func (e *Engine) buildResult(
	req *orderbookv1.PlaceOrderRequest,
	res *orderbookv1.SubmitResult,
	sample latencyv1.Sample,
	reference float64,
	pre *queuev1.Estimate,
) *executionv1.ExecutionResult {
	executed := res.ExecutedQuantity()
	price := res.AveragePrice()

	result := &executionv1.ExecutionResult{
		OrderID:           res.Order.ID,
		Symbol:            res.Order.Symbol,
		Side:              res.Order.Side,
		Type:              res.Order.Type,
		Status:            res.Order.Status,
		RequestedQuantity: req.Quantity,
		ExecutedQuantity:  executed,
		RemainingQuantity: res.Order.Remaining,
		ExecutedPrice:     price,
		ReferencePrice:    reference,
		Slippage:          slippage(res.Order.Side, price, reference, executed),
		LatencyNs:         sample.Total().Nanoseconds(),
		FeedLatencyNs:     sample.FeedLatency.Nanoseconds(),
		OrderLatencyNs:    sample.OrderLatency.Nanoseconds(),
		Trades:            res.Trades,
		Timestamp:         e.clock.Now().UnixNano(),
	}

	switch {
	case res.Rested():
		est, ok := e.restingEstimate(res, pre)
		if ok {
			result.QueueWaitNs = est.ExpectedWait.Nanoseconds()
			result.AheadQuantity = est.AheadQuantity
			result.FillProbability = est.FillProbability
		}
	case res.Order.Status == orderbookv1.StatusFilled:
		result.FillProbability = 1
	}
	return result
}

// restingEstimate prefers the live queue position reported by the venue
// over the estimate taken from the caller's snapshot.
func (e *Engine) restingEstimate(res *orderbookv1.SubmitResult, pre *queuev1.Estimate) (queuev1.Estimate, bool) {
	if res.Queue != nil {
		return e.estimator.FromPosition(*res.Queue), true
	}
	if pre != nil {
		return *pre, true
	}
	return queuev1.Estimate{}, false
}

// referencePrice is the limit price, or the mid for market orders. The
// caller's snapshot wins over the venue's book; with a one-sided book the
// best opposite price is used.
func (e *Engine) referencePrice(ctx context.Context, order *orderbookv1.Order, snapshot *orderbookv1.BookSnapshot) float64 {
	if order.Type == orderbookv1.OrderTypeLimit {
		return order.Price
	}
	if mid, ok := snapshot.Mid(); ok {
		return mid
	}

	book, err := e.venue.Snapshot(ctx, order.Symbol, 1)
	if err != nil {
		return 0
	}
	if mid, ok := book.Mid(); ok {
		return mid
	}
	if order.IsBid() {
		if ask, ok := book.BestAsk(); ok {
			return ask.Price
		}
		return 0
	}
	if bid, ok := book.BestBid(); ok {
		return bid.Price
	}
	return 0
}

// slippage is positive when the fill is worse than reference for side.
func slippage(side orderbookv1.Side, executed, reference, quantity float64) float64 {
	if quantity <= orderbookv1.Epsilon || reference <= 0 {
		return 0
	}
	if side == orderbookv1.SideBuy {
		return executed - reference
	}
	return reference - executed
}

// pruneMakers forgets tracked orders that a fill made terminal.
func (e *Engine) pruneMakers(ctx context.Context, trades []orderbookv1.Trade) {
	for _, t := range trades {
		if _, tracked := e.orders.Load(t.MakerOrderID); !tracked {
			continue
		}
		o, ok, err := e.venue.Order(ctx, t.Symbol, t.MakerOrderID)
		if err != nil {
			continue
		}
		if !ok || o.Status.IsTerminal() {
			e.orders.Delete(t.MakerOrderID)
		}
	}
}

// CancelOrder cancels an order this engine rested. false means the order is
// unknown or already terminal.
func (e *Engine) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	if err := e.enter(); err != nil {
		return false, err
	}
	defer e.inflight.Done()

	cancelled, err := e.cancel(ctx, orderID)
	if cancelled {
		e.stats.RecordCancel()
	}
	return cancelled, err
}

func (e *Engine) cancel(ctx context.Context, orderID string) (bool, error) {
	v, ok := e.orders.Load(orderID)
	if !ok {
		return false, nil
	}
	symbol := v.(string)

	cancelled, err := e.venue.Cancel(util.WithSymbol(ctx, symbol), symbol, orderID)
	if err != nil {
		return false, err
	}
	e.orders.Delete(orderID)
	return cancelled, nil
}

// CancelAllOrders cancels every tracked order of symbol, or of all symbols
// when symbol is empty. Orders that filled in the meantime are skipped.
func (e *Engine) CancelAllOrders(ctx context.Context, symbol string) (int, error) {
	if err := e.enter(); err != nil {
		return 0, err
	}
	defer e.inflight.Done()

	var ids []string
	e.orders.Range(func(k, v any) bool {
		if symbol == "" || v.(string) == symbol {
			ids = append(ids, k.(string))
		}
		return true
	})

	count := 0
	var firstErr error
	for _, id := range ids {
		ok, err := e.cancel(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			count++
		}
	}
	e.stats.RecordCancels(count)

	e.logger.InfoContext(util.WithSymbol(ctx, symbol), "Cancelled all orders",
		logger.NewField("cancelled", count),
		logger.NewField("tracked", len(ids)),
	)
	return count, firstErr
}

// GetOrder returns the venue's view of an order.
func (e *Engine) GetOrder(ctx context.Context, symbol, orderID string) (orderbookv1.Order, error) {
	o, ok, err := e.venue.Order(ctx, symbol, orderID)
	if err != nil {
		return orderbookv1.Order{}, err
	}
	if !ok {
		return orderbookv1.Order{}, errors.NewErrorDetailsWithObject("order not found", string(errors.OrderNotFoundError), "orderID", orderID)
	}
	return o, nil
}

// GetPerformanceStats returns the current counters.
func (e *Engine) GetPerformanceStats() executionv1.PerformanceStats {
	return e.stats.Snapshot(int64(e.venue.ActiveOrderCount()))
}

// GetExecutionHistory returns up to limit results, newest first.
func (e *Engine) GetExecutionHistory(limit int) []executionv1.ExecutionResult {
	return e.history.Latest(limit)
}

// GetOrderBook returns a read-only snapshot of the venue's book.
func (e *Engine) GetOrderBook(ctx context.Context, symbol string) (*orderbookv1.BookSnapshot, error) {
	return e.venue.Snapshot(ctx, symbol, e.depth)
}

// ResetStats clears statistics and history. Resting orders are untouched.
func (e *Engine) ResetStats() {
	e.stats.Reset()
	e.history.Reset()
	e.logger.Info("Execution statistics reset")
}

// Shutdown rejects new calls and waits for in-flight executions.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Execution engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Execution engine shutdown timeout exceeded")
		return ctx.Err()
	}
}

// Ready reports ErrEngineClosed once Shutdown has been called.
func (e *Engine) Ready(_ context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return executionv1.ErrEngineClosed
	}
	return nil
}

func (e *Engine) enter() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return executionv1.ErrEngineClosed
	}
	e.inflight.Add(1)
	return nil
}
