package queueposition

import (
	"math"
	"time"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	queuev1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/queue/v1"
)

const (
	// DefaultConsumptionRate is the opposing volume per second assumed to
	// trade through a level.
	DefaultConsumptionRate = 10.0
	// DefaultMaxWait caps expected waits, including zero-probability fills.
	DefaultMaxWait = time.Hour
)

// Estimator implements queuev1.Estimator on top of a ProbabilityModel.
type Estimator struct {
	model   queuev1.ProbabilityModel
	rate    float64
	maxWait time.Duration
}

// Option configures the Estimator.
type Option func(*Estimator)

// WithConsumptionRate sets how fast the queue ahead is assumed to drain.
func WithConsumptionRate(perSecond float64) Option {
	return func(e *Estimator) {
		if perSecond > 0 {
			e.rate = perSecond
		}
	}
}

// WithMaxWait caps the expected wait.
func WithMaxWait(d time.Duration) Option {
	return func(e *Estimator) {
		if d > 0 {
			e.maxWait = d
		}
	}
}

// NewEstimator creates an Estimator; a nil model means PowerProb with k=2.
func NewEstimator(model queuev1.ProbabilityModel, opts ...Option) *Estimator {
	if model == nil {
		model = PowerProb{Exponent: DefaultPowerExponent}
	}
	e := &Estimator{
		model:   model,
		rate:    DefaultConsumptionRate,
		maxWait: DefaultMaxWait,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the configured probability model.
func (e *Estimator) Model() queuev1.ProbabilityModel {
	return e.model
}

// Estimate places a hypothetical order at the back of its level in snapshot.
func (e *Estimator) Estimate(order *orderbookv1.Order, snapshot *orderbookv1.BookSnapshot) queuev1.Estimate {
	if order == nil {
		return queuev1.Estimate{}
	}
	qty := order.Remaining
	if qty <= 0 {
		qty = order.Quantity
	}
	if order.Type == orderbookv1.OrderTypeMarket {
		return queuev1.Estimate{LevelQuantity: qty, FillProbability: 1}
	}

	ahead := 0.0
	if level, ok := snapshot.Level(order.Side, order.Price); ok {
		ahead = level.Quantity
	}
	return e.estimate(ahead, ahead+qty)
}

// FromPosition estimates from a known position in the live book.
func (e *Estimator) FromPosition(position orderbookv1.QueuePosition) queuev1.Estimate {
	return e.estimate(position.AheadQuantity, position.LevelQuantity)
}

func (e *Estimator) estimate(ahead, level float64) queuev1.Estimate {
	p := e.model.Probability(ahead, level)
	return queuev1.Estimate{
		AheadQuantity:   ahead,
		LevelQuantity:   level,
		FillProbability: p,
		ExpectedWait:    e.expectedWait(ahead, p),
	}
}

// expectedWait is the time to drain ahead at the consumption rate,
// stretched by 1/p.
func (e *Estimator) expectedWait(ahead, p float64) time.Duration {
	if ahead <= orderbookv1.Epsilon {
		return 0
	}
	if p <= 0 {
		return e.maxWait
	}
	ns := ahead / e.rate / p * float64(time.Second)
	if math.IsNaN(ns) || ns >= float64(e.maxWait) {
		return e.maxWait
	}
	return time.Duration(ns)
}
