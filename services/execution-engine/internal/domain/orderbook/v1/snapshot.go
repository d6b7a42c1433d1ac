package orderbookv1

import "math"

// PriceLevel is a read-only view of one level of the ladder.
type PriceLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Orders   int     `json:"orders"`
}

// BookSnapshot is a point-in-time view of a book. Bids are sorted
// descending and asks ascending.
type BookSnapshot struct {
	Symbol    string       `json:"symbol"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
	Sequence  uint64       `json:"sequence"`
	Timestamp int64        `json:"timestamp"`
}

// FromPairs builds a snapshot from the connector format [[price, qty], ...].
// Levels are taken as given; the caller is responsible for their order.
func FromPairs(symbol string, bids, asks [][2]float64) *BookSnapshot {
	s := &BookSnapshot{
		Symbol: symbol,
		Bids:   make([]PriceLevel, 0, len(bids)),
		Asks:   make([]PriceLevel, 0, len(asks)),
	}
	for _, b := range bids {
		s.Bids = append(s.Bids, PriceLevel{Price: b[0], Quantity: b[1]})
	}
	for _, a := range asks {
		s.Asks = append(s.Asks, PriceLevel{Price: a[0], Quantity: a[1]})
	}
	return s
}

// BestBid returns the highest bid level.
func (s *BookSnapshot) BestBid() (PriceLevel, bool) {
	if s == nil || len(s.Bids) == 0 {
		return PriceLevel{}, false
	}
	return s.Bids[0], true
}

// BestAsk returns the lowest ask level.
func (s *BookSnapshot) BestAsk() (PriceLevel, bool) {
	if s == nil || len(s.Asks) == 0 {
		return PriceLevel{}, false
	}
	return s.Asks[0], true
}

// Mid returns the midpoint of the best bid and ask.
func (s *BookSnapshot) Mid() (float64, bool) {
	bid, okBid := s.BestBid()
	ask, okAsk := s.BestAsk()
	if !okBid || !okAsk {
		return 0, false
	}
	return (bid.Price + ask.Price) / 2, true
}

// Level finds the level at price on the given side.
func (s *BookSnapshot) Level(side Side, price float64) (PriceLevel, bool) {
	if s == nil {
		return PriceLevel{}, false
	}
	levels := s.Asks
	if side == SideBuy {
		levels = s.Bids
	}
	for _, l := range levels {
		if math.Abs(l.Price-price) <= Epsilon {
			return l, true
		}
	}
	return PriceLevel{}, false
}
