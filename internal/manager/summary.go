package manager

import "github.com/saiputravu/orderbook/internal/engine"

// LevelSummarized is one price level with its share of the side's total
// resting quantity: percent = quantity / side_total * 100.
type LevelSummarized struct {
	Price      float64
	Quantity   float64
	Cumulative float64
	Percent    float64
}

// OrderBookSummarized is the manager's projection of an OrderBook.Summarize
// result, with percentages computed relative to each side's total quantity.
type OrderBookSummarized struct {
	Bids     []LevelSummarized
	MidPrice float64
	Asks     []LevelSummarized
}

func summarize(b *engine.OrderBook) OrderBookSummarized {
	bids, mid, asks := b.Summarize()
	return OrderBookSummarized{
		Bids:     percentify(bids, b.BidQuantity()),
		MidPrice: mid,
		Asks:     percentify(asks, b.AskQuantity()),
	}
}

func percentify(levels []engine.LevelSummary, sideTotal float64) []LevelSummarized {
	out := make([]LevelSummarized, len(levels))
	for i, l := range levels {
		var pct float64
		if sideTotal > 0 {
			pct = l.Quantity / sideTotal * 100
		}
		out[i] = LevelSummarized{
			Price:      l.Price,
			Quantity:   l.Quantity,
			Cumulative: l.Cumulative,
			Percent:    pct,
		}
	}
	return out
}
