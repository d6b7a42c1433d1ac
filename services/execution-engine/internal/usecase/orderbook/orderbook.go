package orderbook

import (
	"fmt"
	"math"
	"sync"

	"github.com/i-onlabs/sigmax/pkg/errors"
	"github.com/i-onlabs/sigmax/pkg/util"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"github.com/tidwall/btree"
)

const (
	defaultRecentCapacity = 10_000
	btreeDegree           = 32
)

// Orderbook is the price-time priority book of one symbol. All mutations
// are serialized by mu; readers get a consistent view under the read lock.
type Orderbook struct {
	mu     sync.RWMutex
	symbol string
	tick   orderbookv1.TickSize
	clock  util.Clock

	slots []slot
	free  []int32
	index map[string]int32 // orderID -> slot

	bids *btree.Map[int64, *limit] // iterate in reverse for best first
	asks *btree.Map[int64, *limit]

	sequence uint64
	halted   error

	// recently terminal orders, kept so lookups and repeated cancels still
	// see them after they leave the book
	recent      map[string]orderbookv1.Order
	recentIDs   []string
	recentNext  int
	recentLimit int
}

// Option configures an Orderbook.
type Option func(*Orderbook)

// WithClock sets the time source used to stamp orders and trades.
func WithClock(clock util.Clock) Option {
	return func(ob *Orderbook) {
		ob.clock = clock
	}
}

// WithRecentCapacity bounds how many terminal orders stay inspectable.
func WithRecentCapacity(n int) Option {
	return func(ob *Orderbook) {
		ob.recentLimit = n
	}
}

// NewOrderbook creates an empty book for symbol.
func NewOrderbook(symbol string, tick orderbookv1.TickSize, opts ...Option) *Orderbook {
	ob := &Orderbook{
		symbol:      symbol,
		tick:        tick,
		clock:       util.RealClock{},
		index:       make(map[string]int32),
		bids:        btree.NewMap[int64, *limit](btreeDegree),
		asks:        btree.NewMap[int64, *limit](btreeDegree),
		recent:      make(map[string]orderbookv1.Order),
		recentLimit: defaultRecentCapacity,
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// Symbol returns the symbol this book trades.
func (ob *Orderbook) Symbol() string {
	return ob.symbol
}

// TickSize returns the price step of the book.
func (ob *Orderbook) TickSize() orderbookv1.TickSize {
	return ob.tick
}

// Check validates order against this book without mutating anything. An
// order without an id is checked as if an unused id will be assigned.
func (ob *Orderbook) Check(order *orderbookv1.Order) error {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	if ob.halted != nil {
		return ob.haltedError()
	}
	if order != nil && order.ID == "" {
		_, err := ob.checkShape(order)
		return err
	}
	_, err := ob.check(order)
	return err
}

// Submit matches order against the opposite side and rests any remainder
// a limit order is allowed to keep. order is updated in place.
func (ob *Orderbook) Submit(order *orderbookv1.Order) (*orderbookv1.SubmitResult, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if ob.halted != nil {
		return nil, ob.haltedError()
	}

	ticks, err := ob.check(order)
	if err != nil {
		return nil, err
	}

	if order.TimeInForce == "" {
		order.TimeInForce = orderbookv1.GTC
		if order.Type == orderbookv1.OrderTypeMarket {
			order.TimeInForce = orderbookv1.IOC
		}
	}

	ob.sequence++
	order.Symbol = ob.symbol
	order.PriceTicks = ticks
	order.Sequence = ob.sequence
	order.Timestamp = ob.clock.Now().UnixNano()
	order.Remaining = order.Quantity
	order.Status = orderbookv1.StatusPending

	result := &orderbookv1.SubmitResult{Trades: make([]orderbookv1.Trade, 0)}

	if order.TimeInForce == orderbookv1.FOK && !ob.canFill(order) {
		order.Status = orderbookv1.StatusCancelled
		ob.retire(*order)
		result.Order = *order
		return result, nil
	}

	if err := ob.match(order, result); err != nil {
		return nil, err
	}

	switch {
	case order.Remaining == 0:
		order.Status = orderbookv1.StatusFilled
		ob.retire(*order)
	case order.Type == orderbookv1.OrderTypeMarket || order.TimeInForce != orderbookv1.GTC:
		order.Status = orderbookv1.StatusCancelled
		ob.retire(*order)
	default:
		result.Queue = ob.rest(order)
	}

	if err := ob.checkCrossed(); err != nil {
		return nil, err
	}

	result.Order = *order
	return result, nil
}

// Cancel removes a resting order. It returns false when the order is
// unknown or already terminal.
func (ob *Orderbook) Cancel(orderID string) (bool, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if ob.halted != nil {
		return false, ob.haltedError()
	}

	idx, ok := ob.index[orderID]
	if !ok {
		return false, nil
	}

	s := &ob.slots[idx]
	l := s.level
	order := s.order

	ob.unlink(idx)
	if l.isEmpty() {
		ob.side(order.Side).Delete(l.price)
	}
	delete(ob.index, orderID)
	ob.release(idx)

	order.Status = orderbookv1.StatusCancelled
	ob.retire(order)

	return true, nil
}

// Order returns a copy of a live or recently terminal order.
func (ob *Orderbook) Order(orderID string) (orderbookv1.Order, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	if idx, ok := ob.index[orderID]; ok {
		return ob.slots[idx].order, true
	}
	o, ok := ob.recent[orderID]
	return o, ok
}

// QueuePosition reports how much resting quantity is ahead of orderID.
func (ob *Orderbook) QueuePosition(orderID string) (orderbookv1.QueuePosition, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	idx, ok := ob.index[orderID]
	if !ok {
		return orderbookv1.QueuePosition{}, false
	}
	return ob.position(idx), true
}

// Snapshot returns up to depth levels per side; depth <= 0 means all.
func (ob *Orderbook) Snapshot(depth int) *orderbookv1.BookSnapshot {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	snap := &orderbookv1.BookSnapshot{
		Symbol:    ob.symbol,
		Bids:      make([]orderbookv1.PriceLevel, 0),
		Asks:      make([]orderbookv1.PriceLevel, 0),
		Sequence:  ob.sequence,
		Timestamp: ob.clock.Now().UnixNano(),
	}

	collect := func(dst *[]orderbookv1.PriceLevel) func(int64, *limit) bool {
		return func(price int64, l *limit) bool {
			*dst = append(*dst, orderbookv1.PriceLevel{
				Price:    ob.tick.ToPrice(price),
				Quantity: l.totalVolume,
				Orders:   l.count,
			})
			return depth <= 0 || len(*dst) < depth
		}
	}
	ob.bids.Reverse(collect(&snap.Bids))
	ob.asks.Scan(collect(&snap.Asks))

	return snap
}

// BestBid returns the highest bid price.
func (ob *Orderbook) BestBid() (float64, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	price, _, ok := ob.bids.Max()
	if !ok {
		return 0, false
	}
	return ob.tick.ToPrice(price), true
}

// BestAsk returns the lowest ask price.
func (ob *Orderbook) BestAsk() (float64, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	price, _, ok := ob.asks.Min()
	if !ok {
		return 0, false
	}
	return ob.tick.ToPrice(price), true
}

// Len returns the number of resting orders.
func (ob *Orderbook) Len() int {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return len(ob.index)
}

// ActiveOrderIDs lists resting orders in price-time priority, bids first.
func (ob *Orderbook) ActiveOrderIDs() []string {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	ids := make([]string, 0, len(ob.index))
	walk := func(_ int64, l *limit) bool {
		for idx := l.head; idx != nilSlot; idx = ob.slots[idx].next {
			ids = append(ids, ob.slots[idx].order.ID)
		}
		return true
	}
	ob.bids.Reverse(walk)
	ob.asks.Scan(walk)
	return ids
}

// Halt stops all further matching on this book.
func (ob *Orderbook) Halt(reason string) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	ob.halt(reason, nil)
}

// Halted returns the violation that halted the book, or nil.
func (ob *Orderbook) Halted() error {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return ob.halted
}

func (ob *Orderbook) check(order *orderbookv1.Order) (int64, error) {
	if order == nil {
		return 0, invalid("order cannot be nil", "", nil)
	}
	if order.ID == "" {
		return 0, invalid("order ID cannot be empty", "id", nil)
	}
	if _, exists := ob.index[order.ID]; exists {
		return 0, invalid(fmt.Sprintf("order with ID %s already exists", order.ID), "id", order.ID)
	}
	if _, exists := ob.recent[order.ID]; exists {
		return 0, invalid(fmt.Sprintf("order with ID %s already exists", order.ID), "id", order.ID)
	}
	return ob.checkShape(order)
}

// checkShape validates everything but the id and returns the price in ticks.
func (ob *Orderbook) checkShape(order *orderbookv1.Order) (int64, error) {
	if order.Symbol != "" && order.Symbol != ob.symbol {
		return 0, invalid(fmt.Sprintf("order for %s submitted to %s book", order.Symbol, ob.symbol), "symbol", order.Symbol)
	}
	if order.Side != orderbookv1.SideBuy && order.Side != orderbookv1.SideSell {
		return 0, invalid("side must be buy or sell", "side", order.Side)
	}
	if !(order.Quantity > orderbookv1.Epsilon) || math.IsInf(order.Quantity, 0) {
		return 0, invalid("quantity must be positive", "quantity", order.Quantity)
	}

	switch order.Type {
	case orderbookv1.OrderTypeMarket:
		return 0, nil
	case orderbookv1.OrderTypeLimit:
		if !(order.Price > 0) || math.IsInf(order.Price, 0) {
			return 0, invalid("price must be positive", "price", order.Price)
		}
		ticks, ok := ob.tick.ToTicks(order.Price)
		if !ok || ticks <= 0 {
			return 0, invalid(fmt.Sprintf("price is not a multiple of tick size %s", ob.tick), "price", order.Price)
		}
		return ticks, nil
	default:
		return 0, invalid("type must be limit or market", "type", order.Type)
	}
}

// match consumes opposite liquidity from the best price outward.
func (ob *Orderbook) match(order *orderbookv1.Order, result *orderbookv1.SubmitResult) error {
	opposite := order.Side.Opposite()
	book := ob.side(opposite)

	for order.Remaining > orderbookv1.Epsilon {
		l, ok := ob.best(opposite)
		if !ok || !crosses(order, l.price) {
			break
		}

		price := ob.tick.ToPrice(l.price)
		for l.head != nilSlot && order.Remaining > orderbookv1.Epsilon {
			idx := l.head
			maker := &ob.slots[idx].order

			qty := math.Min(order.Remaining, maker.Remaining)
			maker.Remaining -= qty
			order.Remaining -= qty
			l.totalVolume -= qty

			if maker.Remaining < -orderbookv1.Epsilon || l.totalVolume < -orderbookv1.Epsilon {
				return ob.halt("negative remaining quantity", maker.ID)
			}

			result.Trades = append(result.Trades, orderbookv1.Trade{
				Symbol:       ob.symbol,
				MakerOrderID: maker.ID,
				TakerOrderID: order.ID,
				TakerSide:    order.Side,
				Price:        price,
				PriceTicks:   l.price,
				Quantity:     qty,
				Timestamp:    order.Timestamp,
			})

			if maker.Remaining <= orderbookv1.Epsilon {
				maker.Remaining = 0
				maker.Status = orderbookv1.StatusFilled
				done := *maker

				ob.unlink(idx)
				delete(ob.index, done.ID)
				ob.release(idx)
				ob.retire(done)
			}
		}

		if l.isEmpty() {
			book.Delete(l.price)
		}
	}

	if order.Remaining <= orderbookv1.Epsilon {
		order.Remaining = 0
	}
	return nil
}

// rest appends the remainder of order to the tail of its price level.
func (ob *Orderbook) rest(order *orderbookv1.Order) *orderbookv1.QueuePosition {
	book := ob.side(order.Side)
	l, ok := book.Get(order.PriceTicks)
	if !ok {
		l = newLimit(order.PriceTicks)
		book.Set(order.PriceTicks, l)
	}

	order.Status = orderbookv1.StatusResting

	ahead := l.totalVolume
	idx := ob.alloc(*order)
	ob.pushBack(l, idx)
	ob.index[order.ID] = idx

	return &orderbookv1.QueuePosition{
		AheadQuantity: ahead,
		LevelQuantity: l.totalVolume,
	}
}

// canFill reports whether the opposite side holds enough crossing volume
// to fill order completely.
func (ob *Orderbook) canFill(order *orderbookv1.Order) bool {
	need := order.Quantity - orderbookv1.Epsilon
	total := 0.0
	iter := func(price int64, l *limit) bool {
		if !crosses(order, price) {
			return false
		}
		total += l.totalVolume
		return total < need
	}
	if order.IsBid() {
		ob.asks.Scan(iter)
	} else {
		ob.bids.Reverse(iter)
	}
	return total >= need
}

func (ob *Orderbook) position(idx int32) orderbookv1.QueuePosition {
	l := ob.slots[idx].level
	ahead := 0.0
	for cur := l.head; cur != idx && cur != nilSlot; cur = ob.slots[cur].next {
		ahead += ob.slots[cur].order.Remaining
	}
	return orderbookv1.QueuePosition{AheadQuantity: ahead, LevelQuantity: l.totalVolume}
}

func (ob *Orderbook) side(side orderbookv1.Side) *btree.Map[int64, *limit] {
	if side == orderbookv1.SideBuy {
		return ob.bids
	}
	return ob.asks
}

func (ob *Orderbook) best(side orderbookv1.Side) (*limit, bool) {
	if side == orderbookv1.SideBuy {
		_, l, ok := ob.bids.Max()
		return l, ok
	}
	_, l, ok := ob.asks.Min()
	return l, ok
}

func (ob *Orderbook) checkCrossed() error {
	bid, _, okBid := ob.bids.Max()
	ask, _, okAsk := ob.asks.Min()
	if okBid && okAsk && bid >= ask {
		return ob.halt("crossed book", map[string]float64{
			"bestBid": ob.tick.ToPrice(bid),
			"bestAsk": ob.tick.ToPrice(ask),
		})
	}
	return nil
}

// halt marks the book unusable and returns the violation.
func (ob *Orderbook) halt(reason string, object any) error {
	err := errors.NewErrorDetailsWithObject(
		fmt.Sprintf("%s: %s", ob.symbol, reason),
		string(errors.InvariantViolationError),
		"book",
		object,
	)
	if ob.halted == nil {
		ob.halted = err
	}
	return err
}

func (ob *Orderbook) haltedError() error {
	return errors.NewErrorDetailsWithObject(
		fmt.Sprintf("symbol %s halted after %s", ob.symbol, ob.halted.Error()),
		string(errors.SymbolHaltedError),
		"symbol",
		ob.symbol,
	)
}

// retire remembers a terminal order, evicting the oldest past the limit.
func (ob *Orderbook) retire(o orderbookv1.Order) {
	if ob.recentLimit <= 0 {
		return
	}
	if len(ob.recentIDs) < ob.recentLimit {
		ob.recentIDs = append(ob.recentIDs, o.ID)
	} else {
		delete(ob.recent, ob.recentIDs[ob.recentNext])
		ob.recentIDs[ob.recentNext] = o.ID
		ob.recentNext = (ob.recentNext + 1) % ob.recentLimit
	}
	ob.recent[o.ID] = o
}

func crosses(order *orderbookv1.Order, price int64) bool {
	if order.Type == orderbookv1.OrderTypeMarket {
		return true
	}
	if order.IsBid() {
		return price <= order.PriceTicks
	}
	return price >= order.PriceTicks
}

func invalid(message, field string, object any) error {
	return errors.NewErrorDetailsWithObject(message, string(errors.InvalidOrderError), field, object)
}
