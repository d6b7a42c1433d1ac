package orderbook

import orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"

const nilSlot int32 = -1

// slot is one cell of the order arena. Price levels link slots by index,
// so removal from the middle of a FIFO never shifts the other orders.
type slot struct {
	order orderbookv1.Order
	level *limit
	prev  int32
	next  int32
	used  bool
}

// limit is a price level: a FIFO of arena slots plus its aggregate volume.
type limit struct {
	price       int64
	head        int32
	tail        int32
	count       int
	totalVolume float64
}

func newLimit(price int64) *limit {
	return &limit{price: price, head: nilSlot, tail: nilSlot}
}

func (l *limit) isEmpty() bool {
	return l.count == 0
}

// alloc stores o in a free slot, growing the arena when none is left.
func (ob *Orderbook) alloc(o orderbookv1.Order) int32 {
	s := slot{order: o, prev: nilSlot, next: nilSlot, used: true}
	if n := len(ob.free); n > 0 {
		idx := ob.free[n-1]
		ob.free = ob.free[:n-1]
		ob.slots[idx] = s
		return idx
	}
	ob.slots = append(ob.slots, s)
	return int32(len(ob.slots) - 1)
}

func (ob *Orderbook) release(idx int32) {
	ob.slots[idx] = slot{prev: nilSlot, next: nilSlot}
	ob.free = append(ob.free, idx)
}

// pushBack appends the slot to the FIFO tail of l.
func (ob *Orderbook) pushBack(l *limit, idx int32) {
	s := &ob.slots[idx]
	s.level = l
	s.prev = l.tail
	s.next = nilSlot
	if l.tail != nilSlot {
		ob.slots[l.tail].next = idx
	} else {
		l.head = idx
	}
	l.tail = idx
	l.count++
	l.totalVolume += s.order.Remaining
}

// unlink removes the slot from its level in O(1). The slot stays allocated.
func (ob *Orderbook) unlink(idx int32) {
	s := &ob.slots[idx]
	l := s.level
	if s.prev != nilSlot {
		ob.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilSlot {
		ob.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	l.count--
	l.totalVolume -= s.order.Remaining
	if l.count == 0 {
		l.totalVolume = 0
	}
	s.prev, s.next, s.level = nilSlot, nilSlot, nil
}
