package executionv1

import (
	"context"

	"github.com/i-onlabs/sigmax/pkg/errors"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

var (
	ErrInvalidOrder       = orderbookv1.ErrInvalidOrder
	ErrUnknownSymbol      = orderbookv1.ErrUnknownSymbol
	ErrInvariantViolation = orderbookv1.ErrInvariantViolation
	ErrSymbolHalted       = orderbookv1.ErrSymbolHalted
	ErrOrderNotFound      = errors.NewErrorDetails("order not found", string(errors.OrderNotFoundError), "orderID")
	ErrEngineClosed       = errors.NewErrorDetails("execution engine is closed", string(errors.EngineClosedError), "")
	ErrLiveVenueMissing   = errors.NewErrorDetails("live mode requires a venue", string(errors.LiveVenueMissingError), "venue")
)

// Venue matches orders. The in-process matching engine is the simulated
// venue; an exchange connector adapter is the live one.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=executionv1_mock
type Venue interface {
	// Check rejects orders the venue would refuse, without side effects.
	Check(ctx context.Context, order *orderbookv1.Order) error
	Submit(ctx context.Context, order *orderbookv1.Order) (*orderbookv1.SubmitResult, error)
	// Cancel returns false when the order is unknown or already terminal.
	Cancel(ctx context.Context, symbol, orderID string) (bool, error)
	Order(ctx context.Context, symbol, orderID string) (orderbookv1.Order, bool, error)
	Snapshot(ctx context.Context, symbol string, depth int) (*orderbookv1.BookSnapshot, error)
	ActiveOrderCount() int
}

// Executor is the surface the strategy layer drives.
type Executor interface {
	ExecuteOrder(ctx context.Context, req *orderbookv1.PlaceOrderRequest, snapshot *orderbookv1.BookSnapshot) (*ExecutionResult, error)
	CancelOrder(ctx context.Context, orderID string) (bool, error)
	CancelAllOrders(ctx context.Context, symbol string) (int, error)
	GetOrder(ctx context.Context, symbol, orderID string) (orderbookv1.Order, error)
	GetPerformanceStats() PerformanceStats
	GetExecutionHistory(limit int) []ExecutionResult
	GetOrderBook(ctx context.Context, symbol string) (*orderbookv1.BookSnapshot, error)
}
