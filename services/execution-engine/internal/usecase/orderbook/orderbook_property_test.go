package orderbook

import (
	"fmt"
	"math"
	"testing"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
	"pgregory.net/rapid"
)

// lots draws a fractional quantity in [min, max] on a 0.001 grid.
func lots(t *rapid.T, label string, min, max float64) float64 {
	return math.Round(rapid.Float64Range(min, max).Draw(t, label)*1000) / 1000
}

// Random submit/cancel sequences must leave the book valid after every step.
func TestProperty_BookInvariantsHold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob := newTestBook()
		var ids []string

		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := range steps {
			if len(ids) > 0 && rapid.IntRange(0, 3).Draw(t, "cancelRoll") == 0 {
				id := rapid.SampledFrom(ids).Draw(t, "cancelID")
				if _, err := ob.Cancel(id); err != nil {
					t.Fatalf("cancel %s: %v", id, err)
				}
			} else {
				side := rapid.SampledFrom([]orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell}).Draw(t, "side")
				qty := lots(t, "qty", 0.001, 50)
				id := fmt.Sprintf("o%d", i)
				var o *orderbookv1.Order
				if rapid.IntRange(0, 4).Draw(t, "marketRoll") == 0 {
					o = marketOrder(id, side, qty)
				} else {
					ticks := rapid.IntRange(990, 1010).Draw(t, "ticks")
					o = limitOrder(id, side, float64(ticks)/100, qty)
				}
				res, err := ob.Submit(o)
				if err != nil {
					t.Fatalf("submit %s: %v", id, err)
				}
				filled := 0.0
				for _, tr := range res.Trades {
					filled += tr.Quantity
				}
				if diff := res.Order.Quantity - filled - res.Order.Remaining; diff > 1e-9 || diff < -1e-9 {
					t.Fatalf("remaining %v does not equal quantity %v minus fills %v", res.Order.Remaining, res.Order.Quantity, filled)
				}
				ids = append(ids, id)
			}

			if err := ob.Validate(); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			bid, okBid := ob.BestBid()
			ask, okAsk := ob.BestAsk()
			if okBid && okAsk && bid >= ask {
				t.Fatalf("book is crossed: best bid %v >= best ask %v", bid, ask)
			}
		}
	})
}

// Orders at one price fill strictly in arrival order.
func TestProperty_FIFOWithinLevel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob := newTestBook()
		n := rapid.IntRange(2, 10).Draw(t, "makers")
		sizes := make([]float64, n)
		total := 0.0
		for i := range n {
			sizes[i] = lots(t, "size", 0.001, 20)
			total += sizes[i]
			if _, err := ob.Submit(limitOrder(fmt.Sprintf("m%d", i), orderbookv1.SideSell, 10.0, sizes[i])); err != nil {
				t.Fatalf("submit maker: %v", err)
			}
		}

		take := lots(t, "take", 0.001, total)
		res, err := ob.Submit(marketOrder("taker", orderbookv1.SideBuy, take))
		if err != nil {
			t.Fatalf("submit taker: %v", err)
		}

		for i, tr := range res.Trades {
			if tr.MakerOrderID != fmt.Sprintf("m%d", i) {
				t.Fatalf("trade %d hit %s out of order", i, tr.MakerOrderID)
			}
			if i < len(res.Trades)-1 && tr.Quantity != sizes[i] {
				t.Fatalf("maker m%d received partial %v before later makers", i, tr.Quantity)
			}
		}
	})
}

// Cancelling a terminal order never changes the book.
func TestProperty_CancelIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob := newTestBook()
		qty := float64(rapid.IntRange(1, 10).Draw(t, "qty"))
		if _, err := ob.Submit(limitOrder("r", orderbookv1.SideBuy, 10.0, qty)); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := ob.Submit(limitOrder("other", orderbookv1.SideBuy, 9.0, 1)); err != nil {
			t.Fatalf("submit: %v", err)
		}

		if rapid.Bool().Draw(t, "fill") {
			if _, err := ob.Submit(marketOrder("m", orderbookv1.SideSell, qty)); err != nil {
				t.Fatalf("fill: %v", err)
			}
		} else if ok, _ := ob.Cancel("r"); !ok {
			t.Fatalf("first cancel should succeed")
		}

		before := ob.Snapshot(0)
		repeats := rapid.IntRange(1, 5).Draw(t, "repeats")
		for range repeats {
			ok, err := ob.Cancel("r")
			if err != nil || ok {
				t.Fatalf("repeated cancel returned %v, %v", ok, err)
			}
		}
		after := ob.Snapshot(0)
		if fmt.Sprint(before.Bids, before.Asks) != fmt.Sprint(after.Bids, after.Asks) {
			t.Fatalf("book changed after repeated cancel")
		}
	})
}
