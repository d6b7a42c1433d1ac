package executionv1

import (
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

// Mode selects where orders are matched.
type Mode string

const (
	// ModeSimulated matches against the in-process matching engine.
	ModeSimulated Mode = "simulated"
	// ModeLive routes orders to an external venue.
	ModeLive Mode = "live"
)

// MarketOrderPolicy decides what happens to a market order that the book
// cannot fill completely.
type MarketOrderPolicy string

const (
	// PolicyIOC fills what is available and cancels the rest.
	PolicyIOC MarketOrderPolicy = "ioc"
	// PolicyFOK kills the whole order unless it can fill completely.
	PolicyFOK MarketOrderPolicy = "fok"
)

// TimeInForce maps the policy onto the book's time in force.
func (p MarketOrderPolicy) TimeInForce() orderbookv1.TimeInForce {
	if p == PolicyFOK {
		return orderbookv1.FOK
	}
	return orderbookv1.IOC
}

// ExecutionResult is the outcome of one execute call. A zero executed
// quantity with a resting status is a valid result, not an error.
type ExecutionResult struct {
	OrderID           string                `json:"orderID"`
	Symbol            string                `json:"symbol"`
	Side              orderbookv1.Side      `json:"side"`
	Type              orderbookv1.OrderType `json:"type"`
	Status            orderbookv1.Status    `json:"status"`
	RequestedQuantity float64               `json:"requestedQuantity"`
	ExecutedQuantity  float64               `json:"executedQuantity"`
	RemainingQuantity float64               `json:"remainingQuantity"`
	// ExecutedPrice is volume weighted over all fills.
	ExecutedPrice  float64 `json:"executedPrice"`
	ReferencePrice float64 `json:"referencePrice"`
	// Slippage is positive when the fill was worse than the reference.
	Slippage        float64             `json:"slippage"`
	LatencyNs       int64               `json:"latencyNs"`
	FeedLatencyNs   int64               `json:"feedLatencyNs"`
	OrderLatencyNs  int64               `json:"orderLatencyNs"`
	QueueWaitNs     int64               `json:"queueWaitNs"`
	AheadQuantity   float64             `json:"aheadQuantity"`
	FillProbability float64             `json:"fillProbability"`
	Trades          []orderbookv1.Trade `json:"trades"`
	Timestamp       int64               `json:"timestamp"`
}

// LatencyStats summarizes simulated latency over all executions.
type LatencyStats struct {
	AvgNs    int64 `json:"avgNs"`
	MinNs    int64 `json:"minNs"`
	MaxNs    int64 `json:"maxNs"`
	TargetNs int64 `json:"targetNs"`
	Achieved bool  `json:"achieved"`
}

// PerformanceStats is the engine-wide counter snapshot.
type PerformanceStats struct {
	TotalOrders       int64        `json:"totalOrders"`
	TotalExecutions   int64        `json:"totalExecutions"`
	ActiveOrders      int64        `json:"activeOrders"`
	CancelCount       int64        `json:"cancelCount"`
	RequestedQuantity float64      `json:"requestedQuantity"`
	FilledQuantity    float64      `json:"filledQuantity"`
	FillRate          float64      `json:"fillRate"`
	Latency           LatencyStats `json:"latency"`
}
