// Package manager implements OrderBookManager, the multi-symbol dispatcher
// that owns one engine.OrderBook per instrument and multiplexes their
// emitted events onto a single shared update channel.
package manager

import (
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/saiputravu/orderbook/internal/common"
	"github.com/saiputravu/orderbook/internal/engine"
)

// OrderBookManager owns a symbol -> OrderBook mapping and the shared
// outbound channel every book emits onto. The command path (AddOrder,
// CancelOrder, the amends, NewOrderbook) is single-threaded per instance,
// guarded by a mutex rather than routed through a task.
type OrderBookManager struct {
	mu     sync.Mutex
	books  map[common.SymbolID]*engine.OrderBook
	events chan common.OrderBookUpdate
}

// New constructs a manager whose shared update channel is buffered to
// bufferSize. A zero or negative bufferSize falls back to an unbuffered
// channel, which is legal but means every emit blocks on a live reader.
func New(bufferSize int) *OrderBookManager {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &OrderBookManager{
		books:  make(map[common.SymbolID]*engine.OrderBook),
		events: make(chan common.OrderBookUpdate, bufferSize),
	}
}

// Events returns the shared, many-producer/many-consumer update channel.
// It is competitive, not broadcast: every update is delivered to exactly
// one reader. Subscribing to it from more than one listener concurrently
// silently partitions the stream between them. See internal/stream's
// package doc for the full consequence and the recommended topology.
func (m *OrderBookManager) Events() <-chan common.OrderBookUpdate {
	return m.events
}

// NewOrderbook creates an empty book for symbol. Returns ErrInvalidInput if
// a book for symbol already exists.
func (m *OrderBookManager) NewOrderbook(symbol common.SymbolID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.books[symbol]; exists {
		log.Error().Str("symbol", symbol.String()).Msg("orderbook already exists")
		return ErrInvalidInput
	}
	m.books[symbol] = engine.NewOrderBook(symbol, m.events)
	log.Info().Str("symbol", symbol.String()).Msg("orderbook created")
	return nil
}

// AddOrder validates o and dispatches it to the book for o.Symbol. NaN
// prices on LIMIT orders and non-positive quantities are rejected here, at
// the manager boundary, so the engine package can trust its input once
// past this point.
func (m *OrderBookManager) AddOrder(o common.Order) error {
	if o.Quantity <= 0 {
		log.Error().Str("orderID", o.ID.String()).Float64("quantity", o.Quantity).Msg("order rejected: invalid quantity")
		return ErrInvalidInput
	}
	if o.Type == common.LimitOrder {
		if o.Price == nil || math.IsNaN(*o.Price) || math.IsInf(*o.Price, 0) {
			log.Error().Str("orderID", o.ID.String()).Msg("order rejected: invalid price")
			return ErrInvalidInput
		}
	}

	m.mu.Lock()
	b, ok := m.books[o.Symbol]
	m.mu.Unlock()
	if !ok {
		log.Info().Str("symbol", o.Symbol.String()).Msg("orderbook not found")
		return ErrNotFound
	}

	b.AddOrder(o)
	return nil
}

// CancelOrder removes order id, resting on side, from symbol's book.
func (m *OrderBookManager) CancelOrder(symbol common.SymbolID, id common.OrderID, side common.Side) error {
	b, ok := m.lookup(symbol)
	if !ok {
		log.Info().Str("symbol", symbol.String()).Msg("orderbook not found")
		return ErrNotFound
	}
	b.CancelOrder(id, side)
	return nil
}

// AmendOrderPrice changes the price of order id, resting on side, in
// symbol's book.
func (m *OrderBookManager) AmendOrderPrice(symbol common.SymbolID, id common.OrderID, newPrice float64, side common.Side) error {
	b, ok := m.lookup(symbol)
	if !ok {
		log.Info().Str("symbol", symbol.String()).Msg("orderbook not found")
		return ErrNotFound
	}
	if err := b.AmendOrderPrice(id, newPrice, side); err != nil {
		log.Error().Str("orderID", id.String()).Err(err).Msg("amend rejected")
		return ErrInvalidInput
	}
	return nil
}

// AmendOrderQuantity changes the quantity of order id, resting on side, in
// symbol's book.
func (m *OrderBookManager) AmendOrderQuantity(symbol common.SymbolID, id common.OrderID, newQty float64, side common.Side) error {
	b, ok := m.lookup(symbol)
	if !ok {
		log.Info().Str("symbol", symbol.String()).Msg("orderbook not found")
		return ErrNotFound
	}
	if err := b.AmendOrderQuantity(id, newQty, side); err != nil {
		log.Error().Str("orderID", id.String()).Err(err).Msg("amend rejected")
		return ErrInvalidInput
	}
	return nil
}

// GetOrderbook returns a computed OrderBookSummarized for symbol.
func (m *OrderBookManager) GetOrderbook(symbol common.SymbolID) (OrderBookSummarized, error) {
	b, ok := m.lookup(symbol)
	if !ok {
		log.Info().Str("symbol", symbol.String()).Msg("orderbook not found")
		return OrderBookSummarized{}, ErrNotFound
	}
	return summarize(b), nil
}

func (m *OrderBookManager) lookup(symbol common.SymbolID) (*engine.OrderBook, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[symbol]
	return b, ok
}
