// Package engine implements OrderBook, the per-symbol matching engine:
// place/cancel/amend and the price-time matching algorithm.
package engine

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/saiputravu/orderbook/internal/book"
	"github.com/saiputravu/orderbook/internal/common"
)

// LevelSummary is one row of a price-level summary: the price, the
// quantity resting at it, and the cumulative quantity from the best price
// through this one.
type LevelSummary struct {
	Price      float64
	Quantity   float64
	Cumulative float64
}

// OrderBook owns the two sides of one symbol and the channel its matcher
// emits updates onto. It is not safe for concurrent mutation; the owning
// manager serializes access to it.
type OrderBook struct {
	symbol common.SymbolID
	bids   *book.PriorityBookSide
	asks   *book.PriorityBookSide

	updates chan<- common.OrderBookUpdate
}

// NewOrderBook constructs an empty book for symbol, emitting onto updates.
func NewOrderBook(symbol common.SymbolID, updates chan<- common.OrderBookUpdate) *OrderBook {
	return &OrderBook{
		symbol:  symbol,
		bids:    book.NewPriorityBookSide(common.Buy),
		asks:    book.NewPriorityBookSide(common.Sell),
		updates: updates,
	}
}

func (b *OrderBook) sideOf(side common.Side) *book.PriorityBookSide {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) emit(u common.OrderBookUpdate) {
	u.Symbol = b.symbol
	b.updates <- u
}

// AddOrder is the entry point from the manager. It always emits NEW, then
// dispatches by order type: LIMIT rests (via PlaceOrder), MARKET sweeps
// without resting (via executeMarket).
func (b *OrderBook) AddOrder(o common.Order) {
	log.Debug().Str("orderID", o.ID.String()).Str("side", o.Side.String()).Msg("order received")
	b.emit(common.OrderBookUpdate{Kind: common.New, Order: ptrOrder(o)})

	switch o.Type {
	case common.MarketOrder:
		b.executeMarket(o)
	default:
		b.PlaceOrder(o)
	}
}

// PlaceOrder rests a LIMIT order on its side, emits PLACE, then triggers
// matching.
func (b *OrderBook) PlaceOrder(o common.Order) {
	b.sideOf(o.Side).Push(o)
	b.emit(common.OrderBookUpdate{Kind: common.Place, Order: ptrOrder(o)})
	b.matchOrders()
}

// CancelOrder removes the order with the given id from side. Removing a
// non-existent id is a no-op that still emits CANCEL, so audit streams
// downstream always see a terminal event for every cancel request.
func (b *OrderBook) CancelOrder(id common.OrderID, side common.Side) {
	b.sideOf(side).Remove(id)
	b.emit(common.OrderBookUpdate{Kind: common.Cancel, CancelID: &id})
}

// AmendOrderPrice mutates the price of the order with the given id on
// side, emits UPDATE, then re-triggers matching since the order may now
// cross. Amending a non-existent id still emits UPDATE with a nil order,
// the same audit-total behavior as CancelOrder.
func (b *OrderBook) AmendOrderPrice(id common.OrderID, newPrice float64, side common.Side) error {
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) {
		return ErrInvalidPrice
	}
	mutated, ok := b.sideOf(side).Modify(id, func(o *common.Order) {
		o.Price = &newPrice
	})
	if !ok {
		b.emit(common.OrderBookUpdate{Kind: common.Update, Order: nil})
		return nil
	}
	b.emit(common.OrderBookUpdate{Kind: common.Update, Order: ptrOrder(mutated)})
	b.matchOrders()
	return nil
}

// AmendOrderQuantity is symmetric to AmendOrderPrice. newQty must be
// strictly positive; a zero or negative quantity is rejected rather than
// silently removing the order.
func (b *OrderBook) AmendOrderQuantity(id common.OrderID, newQty float64, side common.Side) error {
	if newQty <= 0 {
		return ErrInvalidQuantity
	}
	mutated, ok := b.sideOf(side).Modify(id, func(o *common.Order) {
		o.Quantity = newQty
	})
	if !ok {
		b.emit(common.OrderBookUpdate{Kind: common.Update, Order: nil})
		return nil
	}
	b.emit(common.OrderBookUpdate{Kind: common.Update, Order: ptrOrder(mutated)})
	b.matchOrders()
	return nil
}

// updateOrder is the matcher's internal helper to shrink a resting order
// after a partial fill. Emits UPDATE; does not trigger re-matching.
func (b *OrderBook) updateOrder(id common.OrderID, newQty float64, side *book.PriorityBookSide) {
	mutated, ok := side.Modify(id, func(o *common.Order) {
		o.Quantity = newQty
	})
	if !ok {
		return
	}
	b.emit(common.OrderBookUpdate{Kind: common.Update, Order: ptrOrder(mutated)})
}

// orderFilled removes the order with the given id from side and emits
// FILLED.
func (b *OrderBook) orderFilled(id common.OrderID, side *book.PriorityBookSide) {
	side.Remove(id)
	b.emit(common.OrderBookUpdate{Kind: common.FilledKind, FilledID: &id})
}

// matchOrders repeats the cross-consuming step until the book is no
// longer crossed: either a side empties, or the best bid no longer meets
// the best ask.
func (b *OrderBook) matchOrders() {
	for {
		ask, askOk := b.asks.Peek()
		bid, bidOk := b.bids.Peek()
		if !askOk || !bidOk {
			return
		}
		if *bid.Price < *ask.Price {
			return
		}

		tradedQty := min(ask.Quantity, bid.Quantity)
		price := *ask.Price // the resting ask's price is used as the trade print

		switch {
		case ask.Quantity > bid.Quantity:
			b.orderFilled(bid.ID, b.bids)
			b.updateOrder(ask.ID, ask.Quantity-bid.Quantity, b.asks)
		case ask.Quantity < bid.Quantity:
			b.orderFilled(ask.ID, b.asks)
			b.updateOrder(bid.ID, bid.Quantity-ask.Quantity, b.bids)
		default:
			b.orderFilled(ask.ID, b.asks)
			b.orderFilled(bid.ID, b.bids)
		}

		trade := common.NewTrade(b.symbol, bid.ID, ask.ID, bid.UserID, ask.UserID, price, tradedQty)
		b.emit(common.OrderBookUpdate{Kind: common.NewTrade, Trade: &trade})
	}
}

// executeMarket sweeps a MARKET order against the opposite side until
// filled or the book runs dry. A MARKET order never rests; any remaining
// quantity once the opposite side empties is discarded silently.
func (b *OrderBook) executeMarket(o common.Order) {
	remaining := o.Quantity
	opposite := b.asks
	if o.Side == common.Sell {
		opposite = b.bids
	}

	for remaining > 0 {
		resting, ok := opposite.Peek()
		if !ok {
			break // book ran dry, remainder is discarded
		}

		price := *resting.Price
		if resting.Quantity <= remaining {
			remaining -= resting.Quantity
			b.orderFilled(resting.ID, opposite)
			b.emitMarketTrade(o, resting, price, resting.Quantity)
		} else {
			b.updateOrder(resting.ID, resting.Quantity-remaining, opposite)
			b.emitMarketTrade(o, resting, price, remaining)
			remaining = 0
		}
	}
}

func (b *OrderBook) emitMarketTrade(aggressor, resting common.Order, price, qty float64) {
	var buyOrderID, sellOrderID common.OrderID
	var buyUserID, sellUserID common.UserID
	if aggressor.Side == common.Buy {
		buyOrderID, sellOrderID = aggressor.ID, resting.ID
		buyUserID, sellUserID = aggressor.UserID, resting.UserID
	} else {
		buyOrderID, sellOrderID = resting.ID, aggressor.ID
		buyUserID, sellUserID = resting.UserID, aggressor.UserID
	}
	trade := common.NewTrade(b.symbol, buyOrderID, sellOrderID, buyUserID, sellUserID, price, qty)
	b.emit(common.OrderBookUpdate{Kind: common.NewTrade, Trade: &trade})
}

// Summarize returns both sides sorted best to worst, with cumulative
// quantity per level, plus the current mid price.
func (b *OrderBook) Summarize() (bids []LevelSummary, midPrice float64, asks []LevelSummary) {
	bids = summarizeSide(b.bids)
	asks = summarizeSide(b.asks)

	bestBid, bidOk := b.bids.Peek()
	bestAsk, askOk := b.asks.Peek()
	if bidOk && askOk {
		midPrice = (*bestBid.Price + *bestAsk.Price) / 2
	}
	return bids, midPrice, asks
}

func summarizeSide(side *book.PriorityBookSide) []LevelSummary {
	levels := side.Levels()
	out := make([]LevelSummary, 0, len(levels))
	var cumulative float64
	for _, level := range levels {
		var levelQty float64
		for _, o := range level.Orders {
			levelQty += o.Quantity
		}
		cumulative += levelQty
		out = append(out, LevelSummary{Price: level.Price, Quantity: levelQty, Cumulative: cumulative})
	}
	return out
}

// Symbol returns the symbol this book serves.
func (b *OrderBook) Symbol() common.SymbolID { return b.symbol }

// BidCount, AskCount, BidQuantity, and AskQuantity expose the running
// bookkeeping counters the manager uses to compute level percentages.
func (b *OrderBook) BidCount() int        { return b.bids.Len() }
func (b *OrderBook) AskCount() int        { return b.asks.Len() }
func (b *OrderBook) BidQuantity() float64 { return b.bids.TotalQuantity() }
func (b *OrderBook) AskQuantity() float64 { return b.asks.TotalQuantity() }

func ptrOrder(o common.Order) *common.Order {
	cp := o.Clone()
	return &cp
}
