package stream

import (
	"context"

	"github.com/saiputravu/orderbook/internal/common"
	"github.com/saiputravu/orderbook/internal/manager"
)

// NewOrders projects UpdateKind NEW into its order payload.
func NewOrders(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.Order] {
	return run(ctx, "new_orders", m.Events(), func(u common.OrderBookUpdate) (common.Order, bool) {
		if u.Kind != common.New || u.Order == nil {
			return common.Order{}, false
		}
		return *u.Order, true
	}, opts...)
}

// PlacedOrders projects UpdateKind PLACE.
func PlacedOrders(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.Order] {
	return run(ctx, "placed_orders", m.Events(), func(u common.OrderBookUpdate) (common.Order, bool) {
		if u.Kind != common.Place || u.Order == nil {
			return common.Order{}, false
		}
		return *u.Order, true
	}, opts...)
}

// NewTrades projects UpdateKind NEW_TRADE.
func NewTrades(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.Trade] {
	return run(ctx, "new_trades", m.Events(), func(u common.OrderBookUpdate) (common.Trade, bool) {
		if u.Kind != common.NewTrade || u.Trade == nil {
			return common.Trade{}, false
		}
		return *u.Trade, true
	}, opts...)
}

// OrderbookUpdates projects UpdateKind UPDATE.
func OrderbookUpdates(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.Order] {
	return run(ctx, "orderbook_updates", m.Events(), func(u common.OrderBookUpdate) (common.Order, bool) {
		if u.Kind != common.Update || u.Order == nil {
			return common.Order{}, false
		}
		return *u.Order, true
	}, opts...)
}

// OrderbookCancels projects UpdateKind CANCEL into the cancelled order id.
func OrderbookCancels(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.OrderID] {
	return run(ctx, "orderbook_cancels", m.Events(), func(u common.OrderBookUpdate) (common.OrderID, bool) {
		if u.Kind != common.Cancel || u.CancelID == nil {
			return common.OrderID{}, false
		}
		return *u.CancelID, true
	}, opts...)
}

// OrderbookFills projects UpdateKind FILLED into the filled order id.
func OrderbookFills(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[common.OrderID] {
	return run(ctx, "orderbook_fills", m.Events(), func(u common.OrderBookUpdate) (common.OrderID, bool) {
		if u.Kind != common.FilledKind || u.FilledID == nil {
			return common.OrderID{}, false
		}
		return *u.FilledID, true
	}, opts...)
}

// bookAffecting reports whether kind is one of the four kinds that can
// change a book's summary: PLACE, CANCEL, UPDATE, FILLED.
func bookAffecting(kind common.UpdateKind) bool {
	switch kind {
	case common.Place, common.Cancel, common.Update, common.FilledKind:
		return true
	default:
		return false
	}
}

// OrderbookSummary recomputes and emits a manager.OrderBookSummarized for
// update.Symbol on every PLACE/CANCEL/UPDATE/FILLED event across every
// symbol. A symbol whose book disappeared between the triggering event and
// the recompute can't happen today, since books are never removed, but the
// check stays here anyway in case that changes.
func OrderbookSummary(ctx context.Context, m *manager.OrderBookManager, opts ...Option) *Subscription[manager.OrderBookSummarized] {
	return run(ctx, "orderbook_summary", m.Events(), func(u common.OrderBookUpdate) (manager.OrderBookSummarized, bool) {
		if !bookAffecting(u.Kind) {
			return manager.OrderBookSummarized{}, false
		}
		summary, err := m.GetOrderbook(u.Symbol)
		if err != nil {
			return manager.OrderBookSummarized{}, false
		}
		return summary, true
	}, opts...)
}

// OrderbookSummaryBySymbol is OrderbookSummary additionally filtered to
// update.Symbol == symbol.
func OrderbookSummaryBySymbol(ctx context.Context, m *manager.OrderBookManager, symbol common.SymbolID, opts ...Option) *Subscription[manager.OrderBookSummarized] {
	return run(ctx, "orderbook_summary_by_symbol", m.Events(), func(u common.OrderBookUpdate) (manager.OrderBookSummarized, bool) {
		if !bookAffecting(u.Kind) || u.Symbol != symbol {
			return manager.OrderBookSummarized{}, false
		}
		summary, err := m.GetOrderbook(u.Symbol)
		if err != nil {
			return manager.OrderBookSummarized{}, false
		}
		return summary, true
	}, opts...)
}
