package orderbookv1

import (
	"encoding/binary"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Side is the direction of an order.
type Side string

const (
	// SideBuy is a bid.
	SideBuy Side = "buy"
	// SideSell is an ask.
	SideSell Side = "sell"
)

// Opposite returns the side an order of this side matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// ParseSide accepts "buy"/"sell" in any case, plus "bid"/"ask".
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(s) {
	case "buy", "bid":
		return SideBuy, true
	case "sell", "ask":
		return SideSell, true
	}
	return "", false
}

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
)

// TimeInForce governs what happens to the part of an order that does not
// match on arrival.
type TimeInForce string

const (
	// GTC rests the remainder on the book.
	GTC TimeInForce = "GTC"
	// IOC fills what it can and cancels the remainder.
	IOC TimeInForce = "IOC"
	// FOK fills the whole quantity or nothing.
	FOK TimeInForce = "FOK"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending Status = "PENDING"
	// StatusResting is every order waiting in a book, filled partly or not.
	StatusResting Status = "RESTING"
	// StatusPartiallyFilled is accepted from live venues that report it for
	// a resting order with fills. It is the same open state as RESTING.
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	StatusFilled          Status = "FILLED"
	StatusCancelled       Status = "CANCELLED"
)

// IsOpen reports whether the order still waits in a book.
func (s Status) IsOpen() bool {
	return s == StatusResting || s == StatusPartiallyFilled
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

// Order represents a single order in the order book.
type Order struct {
	ID          string      `json:"id"`
	Owner       string      `json:"owner,omitempty"`
	Symbol      string      `json:"symbol"`
	Side        Side        `json:"side"`
	Type        OrderType   `json:"type"`
	TimeInForce TimeInForce `json:"timeInForce"`
	Price       float64     `json:"price,omitempty"`
	PriceTicks  int64       `json:"priceTicks,omitempty"`
	Quantity    float64     `json:"quantity"`
	Remaining   float64     `json:"remaining"`
	Timestamp   int64       `json:"timestamp"`
	Sequence    uint64      `json:"sequence"`
	Status      Status      `json:"status"`
}

// NewIDGenerator returns a generator of lexicographically sortable order
// ids stamped with now. Entropy comes from seed, so the same seed and the
// same sequence of times yield the same ids. Ids within one millisecond
// are strictly increasing. The generator is safe for concurrent use.
func NewIDGenerator(seed uint64, now func() time.Time) func() string {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	entropy := ulid.Monotonic(rand.NewChaCha8(key), 0)

	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(now()), entropy).String()
	}
}

// NewOrder creates a pending order from a validated request. Prices are not
// converted to ticks here; the book does that with its own tick size.
func NewOrder(id string, req *PlaceOrderRequest) *Order {
	tif := req.TimeInForce
	if tif == "" {
		tif = GTC
		if req.Type == OrderTypeMarket {
			tif = IOC
		}
	}
	price := req.Price
	if req.Type == OrderTypeMarket {
		price = 0
	}
	return &Order{
		ID:          id,
		Owner:       req.Owner,
		Symbol:      req.Symbol,
		Side:        req.Side,
		Type:        req.Type,
		TimeInForce: tif,
		Price:       price,
		Quantity:    req.Quantity,
		Remaining:   req.Quantity,
		Status:      StatusPending,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsFilled checks if nothing is left to fill.
func (o *Order) IsFilled() bool {
	return o.Remaining <= Epsilon
}

// Filled returns the quantity executed so far.
func (o *Order) Filled() float64 {
	return o.Quantity - o.Remaining
}
