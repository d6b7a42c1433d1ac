package orderbookv1

// Trade is one fill between a resting maker and an incoming taker.
type Trade struct {
	Symbol       string  `json:"symbol"`
	MakerOrderID string  `json:"makerOrderID"`
	TakerOrderID string  `json:"takerOrderID"`
	TakerSide    Side    `json:"takerSide"`
	Price        float64 `json:"price"`
	PriceTicks   int64   `json:"priceTicks"`
	Quantity     float64 `json:"quantity"`
	Timestamp    int64   `json:"timestamp"`
}

// QueuePosition is where a resting order sits in its price level.
type QueuePosition struct {
	// AheadQuantity is the resting quantity placed strictly before the order.
	AheadQuantity float64 `json:"aheadQuantity"`
	// LevelQuantity is the level's aggregate including the order itself.
	LevelQuantity float64 `json:"levelQuantity"`
}

// SubmitResult is what a venue reports back for one submitted order.
type SubmitResult struct {
	// Order is a copy of the taker after matching.
	Order  Order   `json:"order"`
	Trades []Trade `json:"trades"`
	// Queue is set when the order rested and the venue knows its position.
	Queue *QueuePosition `json:"queue,omitempty"`
}

// Rested reports whether the order is now resting on the book.
func (r *SubmitResult) Rested() bool {
	return r.Order.Status.IsOpen()
}

// ExecutedQuantity sums trade quantities.
func (r *SubmitResult) ExecutedQuantity() float64 {
	total := 0.0
	for _, t := range r.Trades {
		total += t.Quantity
	}
	return total
}

// AveragePrice returns the volume-weighted trade price, or 0 without trades.
func (r *SubmitResult) AveragePrice() float64 {
	notional, qty := 0.0, 0.0
	for _, t := range r.Trades {
		notional += t.Price * t.Quantity
		qty += t.Quantity
	}
	if qty <= Epsilon {
		return 0
	}
	return notional / qty
}
