package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiputravu/orderbook/internal/common"
)

func newTestBook() (*OrderBook, chan common.OrderBookUpdate) {
	ch := make(chan common.OrderBookUpdate, 64)
	symbol := common.NewID()
	return NewOrderBook(symbol, ch), ch
}

func limit(side common.Side, price, qty float64) common.Order {
	p := price
	return common.NewOrder(common.NewID(), common.NewID(), common.NewID(), side, common.LimitOrder, qty, &p)
}

func market(side common.Side, qty float64) common.Order {
	return common.NewOrder(common.NewID(), common.NewID(), common.NewID(), side, common.MarketOrder, qty, nil)
}

func drain(ch chan common.OrderBookUpdate) []common.OrderBookUpdate {
	var out []common.OrderBookUpdate
	for {
		select {
		case u := <-ch:
			out = append(out, u)
		default:
			return out
		}
	}
}

func kinds(updates []common.OrderBookUpdate) []common.UpdateKind {
	out := make([]common.UpdateKind, len(updates))
	for i, u := range updates {
		out[i] = u.Kind
	}
	return out
}

func TestEmptyBookRestsWithoutMatch(t *testing.T) {
	b, ch := newTestBook()
	o := limit(common.Buy, 100, 5)
	b.AddOrder(o)

	updates := drain(ch)
	assert.Equal(t, []common.UpdateKind{common.New, common.Place}, kinds(updates))
	assert.Equal(t, 1, b.BidCount())
	assert.Equal(t, 0, b.AskCount())
}

func TestSimpleCrossProducesTrade(t *testing.T) {
	b, ch := newTestBook()
	sell := limit(common.Sell, 100, 5)
	buy := limit(common.Buy, 100, 5)

	b.AddOrder(sell)
	drain(ch)
	b.AddOrder(buy)
	updates := drain(ch)

	require.Contains(t, kinds(updates), common.NewTrade)
	var trade *common.Trade
	for _, u := range updates {
		if u.Kind == common.NewTrade {
			trade = u.Trade
		}
	}
	require.NotNil(t, trade)
	assert.Equal(t, 100.0, trade.Price)
	assert.Equal(t, 5.0, trade.Quantity)
	assert.Equal(t, buy.ID, trade.BuyOrderID)
	assert.Equal(t, sell.ID, trade.SellOrderID)

	assert.Equal(t, 0, b.BidCount())
	assert.Equal(t, 0, b.AskCount())
}

func TestMarketOrderSweepsMultipleLevels(t *testing.T) {
	b, ch := newTestBook()
	b.AddOrder(limit(common.Sell, 100, 3))
	b.AddOrder(limit(common.Sell, 101, 3))
	drain(ch)

	b.AddOrder(market(common.Buy, 5))
	updates := drain(ch)

	var trades []*common.Trade
	for _, u := range updates {
		if u.Kind == common.NewTrade {
			trades = append(trades, u.Trade)
		}
	}
	require.Len(t, trades, 2)
	assert.Equal(t, 100.0, trades[0].Price)
	assert.Equal(t, 3.0, trades[0].Quantity)
	assert.Equal(t, 101.0, trades[1].Price)
	assert.Equal(t, 2.0, trades[1].Quantity)
	assert.Equal(t, 1.0, b.AskQuantity())
}

func TestLimitOrderSweepsThenRests(t *testing.T) {
	b, ch := newTestBook()
	b.AddOrder(limit(common.Sell, 100, 3))
	drain(ch)

	b.AddOrder(limit(common.Buy, 105, 10))
	drain(ch)

	assert.Equal(t, 0, b.AskCount())
	assert.Equal(t, 1, b.BidCount())
	assert.Equal(t, 7.0, b.BidQuantity())
}

func TestOversizedMarketOrderDiscardsRemainder(t *testing.T) {
	b, ch := newTestBook()
	b.AddOrder(limit(common.Sell, 100, 2))
	drain(ch)

	b.AddOrder(market(common.Buy, 10))
	updates := drain(ch)

	var trades []*common.Trade
	for _, u := range updates {
		if u.Kind == common.NewTrade {
			trades = append(trades, u.Trade)
		}
	}
	require.Len(t, trades, 1)
	assert.Equal(t, 2.0, trades[0].Quantity)
	assert.Equal(t, 0, b.AskCount())
}

func TestAmendPriceLiftsOrderIntoCross(t *testing.T) {
	b, ch := newTestBook()
	b.AddOrder(limit(common.Sell, 100, 5))
	buy := limit(common.Buy, 90, 5)
	b.AddOrder(buy)
	drain(ch)

	require.NoError(t, b.AmendOrderPrice(buy.ID, 100, common.Buy))
	updates := drain(ch)

	assert.Contains(t, kinds(updates), common.Update)
	assert.Contains(t, kinds(updates), common.NewTrade)
	assert.Equal(t, 0, b.AskCount())
	assert.Equal(t, 0, b.BidCount())
}

func TestAmendPriceRejectsNaN(t *testing.T) {
	b, ch := newTestBook()
	o := limit(common.Buy, 100, 5)
	b.AddOrder(o)
	drain(ch)

	err := b.AmendOrderPrice(o.ID, math.NaN(), common.Buy)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCancelUnknownOrderStillEmits(t *testing.T) {
	b, ch := newTestBook()
	b.CancelOrder(common.NewID(), common.Buy)
	updates := drain(ch)
	require.Len(t, updates, 1)
	assert.Equal(t, common.Cancel, updates[0].Kind)
}

func TestAmendQuantityRejectsNonPositive(t *testing.T) {
	b, _ := newTestBook()
	o := limit(common.Buy, 100, 5)
	b.AddOrder(o)

	err := b.AmendOrderQuantity(o.ID, 0, common.Buy)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSummarizeOrdersBestToWorstBothSides(t *testing.T) {
	b, ch := newTestBook()
	b.AddOrder(limit(common.Buy, 99, 1))
	b.AddOrder(limit(common.Buy, 101, 1))
	b.AddOrder(limit(common.Sell, 110, 1))
	b.AddOrder(limit(common.Sell, 105, 1))
	drain(ch)

	bids, mid, asks := b.Summarize()
	require.Len(t, bids, 2)
	require.Len(t, asks, 2)
	assert.Equal(t, 101.0, bids[0].Price)
	assert.Equal(t, 99.0, bids[1].Price)
	assert.Equal(t, 105.0, asks[0].Price)
	assert.Equal(t, 110.0, asks[1].Price)
	assert.Equal(t, 103.0, mid)
	assert.Equal(t, 1.0, bids[0].Cumulative)
	assert.Equal(t, 2.0, bids[1].Cumulative)
}

func TestPartialFillShrinksRestingOrder(t *testing.T) {
	b, ch := newTestBook()
	sell := limit(common.Sell, 100, 10)
	b.AddOrder(sell)
	drain(ch)

	b.AddOrder(limit(common.Buy, 100, 4))
	drain(ch)

	assert.Equal(t, 1, b.AskCount())
	assert.Equal(t, 6.0, b.AskQuantity())
}
