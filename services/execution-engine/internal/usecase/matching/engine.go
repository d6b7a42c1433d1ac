package matching

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/logger"
	"github.com/i-onlabs/sigmax/pkg/util"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"github.com/i-onlabs/sigmax/services/execution-engine/internal/usecase/orderbook"
)

// Engine owns one Orderbook per symbol. Books are independent: operations
// on different symbols never share a lock beyond the registry read lock.
type Engine struct {
	mu    sync.RWMutex
	books map[string]*orderbook.Orderbook

	logger         *logger.Logger
	clock          util.Clock
	newID          func() string
	idSeed         uint64
	recentCapacity int
}

// Option configures the matching Engine.
type Option func(*Engine)

// WithClock sets the clock handed to every book.
func WithClock(clock util.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithIDGenerator replaces the ULID generator used for orders without an id.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithIDSeed seeds the default ULID generator.
func WithIDSeed(seed uint64) Option {
	return func(e *Engine) {
		e.idSeed = seed
	}
}

// WithRecentCapacity bounds the terminal orders each book keeps for lookups.
func WithRecentCapacity(n int) Option {
	return func(e *Engine) {
		e.recentCapacity = n
	}
}

// NewEngine creates a matching engine with no symbols registered.
func NewEngine(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		books:  make(map[string]*orderbook.Orderbook),
		logger: log,
		clock:  util.RealClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newID == nil {
		e.newID = orderbookv1.NewIDGenerator(e.idSeed, e.clock.Now)
	}
	return e
}

// RegisterSymbol creates an empty book for symbol.
func (e *Engine) RegisterSymbol(symbol string, tickSize float64) error {
	if symbol == "" {
		return errors.NewErrorDetails("symbol cannot be empty", string(errors.GeneralBadRequestError), "symbol")
	}
	tick, err := orderbookv1.NewTickSize(tickSize)
	if err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.GeneralBadRequestError), "tickSize")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.books[symbol]; exists {
		return errors.NewErrorDetailsWithObject(fmt.Sprintf("symbol %s already registered", symbol), string(errors.DuplicateSymbolError), "symbol", symbol)
	}

	opts := []orderbook.Option{orderbook.WithClock(e.clock)}
	if e.recentCapacity > 0 {
		opts = append(opts, orderbook.WithRecentCapacity(e.recentCapacity))
	}
	e.books[symbol] = orderbook.NewOrderbook(symbol, tick, opts...)

	e.logger.Info("Symbol registered",
		logger.NewField("symbol", symbol),
		logger.NewField("tickSize", tick.String()),
	)
	return nil
}

// Symbols lists registered symbols in sorted order.
func (e *Engine) Symbols() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	symbols := make([]string, 0, len(e.books))
	for s := range e.books {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Book returns the book of symbol.
func (e *Engine) Book(symbol string) (*orderbook.Orderbook, error) {
	e.mu.RLock()
	book, ok := e.books[symbol]
	e.mu.RUnlock()

	if !ok {
		return nil, errors.NewErrorDetailsWithObject(fmt.Sprintf("no book registered for %s", symbol), string(errors.UnknownSymbolError), "symbol", symbol)
	}
	return book, nil
}

// Check validates order against its book without submitting it.
func (e *Engine) Check(_ context.Context, order *orderbookv1.Order) error {
	if order == nil {
		return errors.NewErrorDetails("order cannot be nil", string(errors.InvalidOrderError), "")
	}
	book, err := e.Book(order.Symbol)
	if err != nil {
		return err
	}
	return book.Check(order)
}

// Submit assigns an id when missing and matches order on its book.
func (e *Engine) Submit(ctx context.Context, order *orderbookv1.Order) (*orderbookv1.SubmitResult, error) {
	if order == nil {
		return nil, errors.NewErrorDetails("order cannot be nil", string(errors.InvalidOrderError), "")
	}
	book, err := e.Book(order.Symbol)
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		order.ID = e.newID()
	}

	result, err := book.Submit(order)
	if err != nil {
		e.logHalt(ctx, order.Symbol, order.ID, err)
		return nil, err
	}
	return result, nil
}

// Cancel removes orderID from the book of symbol. false means the order is
// unknown or already terminal.
func (e *Engine) Cancel(ctx context.Context, symbol, orderID string) (bool, error) {
	book, err := e.Book(symbol)
	if err != nil {
		return false, err
	}
	ok, err := book.Cancel(orderID)
	if err != nil {
		e.logHalt(ctx, symbol, orderID, err)
		return false, err
	}
	return ok, nil
}

// Order looks up a live or recently terminal order.
func (e *Engine) Order(_ context.Context, symbol, orderID string) (orderbookv1.Order, bool, error) {
	book, err := e.Book(symbol)
	if err != nil {
		return orderbookv1.Order{}, false, err
	}
	o, ok := book.Order(orderID)
	return o, ok, nil
}

// Snapshot returns a consistent view of the book of symbol.
func (e *Engine) Snapshot(_ context.Context, symbol string, depth int) (*orderbookv1.BookSnapshot, error) {
	book, err := e.Book(symbol)
	if err != nil {
		return nil, err
	}
	return book.Snapshot(depth), nil
}

// ActiveOrderCount sums resting orders over all books.
func (e *Engine) ActiveOrderCount() int {
	e.mu.RLock()
	books := make([]*orderbook.Orderbook, 0, len(e.books))
	for _, b := range e.books {
		books = append(books, b)
	}
	e.mu.RUnlock()

	total := 0
	for _, b := range books {
		total += b.Len()
	}
	return total
}

// HaltSymbol stops matching on symbol.
func (e *Engine) HaltSymbol(ctx context.Context, symbol, reason string) error {
	book, err := e.Book(symbol)
	if err != nil {
		return err
	}
	book.Halt(reason)
	e.logger.WarnContext(util.WithSymbol(ctx, symbol), "Symbol halted",
		logger.NewField("reason", reason),
	)
	return nil
}

// Halted reports whether symbol is halted.
func (e *Engine) Halted(symbol string) bool {
	book, err := e.Book(symbol)
	if err != nil {
		return false
	}
	return book.Halted() != nil
}

// logHalt surfaces invariant violations; other errors are the caller's.
func (e *Engine) logHalt(ctx context.Context, symbol, orderID string, err error) {
	if !errors.ErrorCodeEquals(err, string(errors.InvariantViolationError)) {
		return
	}
	fields := []logger.Field{
		logger.NewField("orderID", orderID),
		logger.NewField("action", "halt_symbol"),
	}
	var details *errors.ErrorDetails
	if stderrors.As(err, &details) && details.Object != nil {
		fields = append(fields, logger.NewField("detail", details.Object))
	}
	e.logger.ErrorContext(util.WithSymbol(ctx, symbol), err, fields...)
}
