package main

import (
	"math/rand/v2"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/order-reader/v1"
)

// generator creates realistic order commands around a base price.
type generator struct {
	rnd         *rand.Rand
	symbols     []string
	tick        orderbookv1.TickSize
	baseTicks   int64
	spreadTicks int64
	marketRatio float64
	maxQuantity float64
}

func newGenerator(seed uint64, symbols []string, tick orderbookv1.TickSize, basePrice float64, spreadTicks int64, marketRatio, maxQuantity float64) (*generator, bool) {
	baseTicks, ok := tick.ToTicks(basePrice)
	if !ok || baseTicks <= spreadTicks || len(symbols) == 0 {
		return nil, false
	}
	if spreadTicks < 1 {
		spreadTicks = 1
	}
	return &generator{
		rnd:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		symbols:     symbols,
		tick:        tick,
		baseTicks:   baseTicks,
		spreadTicks: spreadTicks,
		marketRatio: marketRatio,
		maxQuantity: maxQuantity,
	}, true
}

// next returns the i-th place command.
func (g *generator) next(i int) *orderreaderv1.Command {
	symbol := g.symbols[i%len(g.symbols)]

	side := orderbookv1.SideSell
	if g.rnd.Float64() < 0.5 {
		side = orderbookv1.SideBuy
	}

	// Quantity between 0.001 and maxQuantity, three decimals
	steps := int64(g.maxQuantity * 1000)
	if steps < 1 {
		steps = 1
	}
	quantity := float64(1+g.rnd.Int64N(steps)) / 1000

	req := &orderbookv1.PlaceOrderRequest{
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
	}
	if g.rnd.Float64() < g.marketRatio {
		req.Type = orderbookv1.OrderTypeMarket
	} else {
		// Bids below the base, asks above it, so the book builds both sides
		offset := 1 + g.rnd.Int64N(g.spreadTicks)
		if side == orderbookv1.SideBuy {
			offset = -offset + 1
		}
		req.Type = orderbookv1.OrderTypeLimit
		req.Price = g.tick.ToPrice(g.baseTicks + offset)
	}

	return &orderreaderv1.Command{
		Type:   orderreaderv1.CommandPlace,
		Symbol: symbol,
		Order:  req,
	}
}
