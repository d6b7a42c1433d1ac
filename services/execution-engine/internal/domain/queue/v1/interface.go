package queuev1

import (
	"time"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

// Estimate is the queue outlook of one order.
type Estimate struct {
	AheadQuantity   float64       `json:"aheadQuantity"`
	LevelQuantity   float64       `json:"levelQuantity"`
	FillProbability float64       `json:"fillProbability"`
	ExpectedWait    time.Duration `json:"expectedWaitNs"`
}

// ProbabilityModel turns queue depth into a fill probability in [0, 1].
type ProbabilityModel interface {
	Name() string
	Probability(ahead, levelTotal float64) float64
}

// Estimator estimates queue position for orders.
type Estimator interface {
	// Estimate treats order as a new arrival at the back of its level in snapshot.
	Estimate(order *orderbookv1.Order, snapshot *orderbookv1.BookSnapshot) Estimate
	// FromPosition estimates from a known position in the live book.
	FromPosition(position orderbookv1.QueuePosition) Estimate
}
