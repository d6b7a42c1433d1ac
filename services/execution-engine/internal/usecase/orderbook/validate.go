package orderbook

import (
	"fmt"
	"math"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

// aggregateTolerance absorbs float drift accumulated by repeated partial
// fills against the same level.
const aggregateTolerance = 1e-6

// Validate walks the whole book and reports the first broken invariant:
// level order, FIFO links and sequence, level aggregates, index
// consistency and an uncrossed top of book.
func (ob *Orderbook) Validate() error {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	seen := 0
	var err error

	check := func(side orderbookv1.Side) func(int64, *limit) bool {
		var last int64
		first := true
		return func(price int64, l *limit) bool {
			if !first && ((side == orderbookv1.SideBuy && price >= last) || (side == orderbookv1.SideSell && price <= last)) {
				err = fmt.Errorf("%s levels out of order at %d", side, price)
				return false
			}
			first, last = false, price

			if err = ob.validateLevel(side, price, l); err != nil {
				return false
			}
			seen += l.count
			return true
		}
	}

	ob.bids.Reverse(check(orderbookv1.SideBuy))
	if err != nil {
		return err
	}
	ob.asks.Scan(check(orderbookv1.SideSell))
	if err != nil {
		return err
	}

	if seen != len(ob.index) {
		return fmt.Errorf("index holds %d orders, levels hold %d", len(ob.index), seen)
	}

	bid, _, okBid := ob.bids.Max()
	ask, _, okAsk := ob.asks.Min()
	if okBid && okAsk && bid >= ask {
		return fmt.Errorf("crossed book: best bid %d >= best ask %d", bid, ask)
	}
	return nil
}

func (ob *Orderbook) validateLevel(side orderbookv1.Side, price int64, l *limit) error {
	if l.price != price {
		return fmt.Errorf("level keyed %d reports price %d", price, l.price)
	}
	if l.isEmpty() {
		return fmt.Errorf("empty %s level left at %d", side, price)
	}

	count := 0
	sum := 0.0
	var lastSeq uint64
	prev := nilSlot
	for idx := l.head; idx != nilSlot; idx = ob.slots[idx].next {
		s := &ob.slots[idx]
		o := &s.order
		switch {
		case !s.used || s.level != l:
			return fmt.Errorf("slot %d is not linked to level %d", idx, price)
		case s.prev != prev:
			return fmt.Errorf("slot %d has broken back link", idx)
		case o.Side != side || o.PriceTicks != price:
			return fmt.Errorf("order %s sits on the wrong level", o.ID)
		case o.Remaining <= 0 || o.Remaining > o.Quantity+orderbookv1.Epsilon:
			return fmt.Errorf("order %s has remaining %v of %v", o.ID, o.Remaining, o.Quantity)
		case o.Status != orderbookv1.StatusResting:
			return fmt.Errorf("order %s resting with status %s", o.ID, o.Status)
		case count > 0 && o.Sequence <= lastSeq:
			return fmt.Errorf("order %s breaks FIFO order", o.ID)
		}
		if got, ok := ob.index[o.ID]; !ok || got != idx {
			return fmt.Errorf("order %s missing from index", o.ID)
		}
		lastSeq = o.Sequence
		sum += o.Remaining
		count++
		prev = idx
	}

	if l.tail != prev {
		return fmt.Errorf("level %d tail does not match last slot", price)
	}
	if count != l.count {
		return fmt.Errorf("level %d counts %d orders, found %d", price, l.count, count)
	}
	if math.Abs(sum-l.totalVolume) > aggregateTolerance {
		return fmt.Errorf("level %d aggregate %v, orders sum to %v", price, l.totalVolume, sum)
	}
	return nil
}
