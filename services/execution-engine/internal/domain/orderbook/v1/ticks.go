package orderbookv1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTickSize is used when a symbol is registered without one.
const DefaultTickSize = 0.01

// TickSize converts between float prices and integer ticks. Prices are
// compared as ticks so matching never depends on float rounding.
type TickSize struct {
	step decimal.Decimal
}

// NewTickSize builds a TickSize from a positive step such as 0.01.
func NewTickSize(step float64) (TickSize, error) {
	d := decimal.NewFromFloat(step)
	if !d.IsPositive() {
		return TickSize{}, fmt.Errorf("tick size must be positive: got %v", step)
	}
	return TickSize{step: d}, nil
}

// MustTickSize is NewTickSize for constants.
func MustTickSize(step float64) TickSize {
	t, err := NewTickSize(step)
	if err != nil {
		panic(err)
	}
	return t
}

// ToTicks returns price in ticks. ok is false when price is not an exact
// multiple of the step.
func (t TickSize) ToTicks(price float64) (ticks int64, ok bool) {
	q := decimal.NewFromFloat(price).Div(t.step)
	if !q.Equal(q.Truncate(0)) {
		return 0, false
	}
	return q.IntPart(), true
}

// ToPrice converts ticks back to a float price.
func (t TickSize) ToPrice(ticks int64) float64 {
	return decimal.NewFromInt(ticks).Mul(t.step).InexactFloat64()
}

// Float returns the step as a float.
func (t TickSize) Float() float64 {
	return t.step.InexactFloat64()
}

func (t TickSize) String() string {
	return t.step.String()
}
