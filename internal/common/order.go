package common

import "time"

// Side is which side of the book an order rests on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

// OrderType distinguishes resting limit orders from sweeping market orders.
// No iceberg, stop, IOC, or FOK semantics. Orders are plain LIMIT or plain
// MARKET.
type OrderType int

const (
	// LimitOrder specifies a worst acceptable price; rests on the book if
	// not immediately marketable.
	LimitOrder OrderType = iota
	// MarketOrder executes against best available prices until filled or
	// the book runs out of liquidity. Never rests.
	MarketOrder
)

func (t OrderType) String() string {
	if t == MarketOrder {
		return "MARKET"
	}
	return "LIMIT"
}

// OrderStatus is informational only. The engine writes it onto emitted
// events but never reads it back to make matching decisions.
type OrderStatus int

const (
	Pending OrderStatus = iota
	Open
	PartiallyFilled
	Filled
	Closed
	Cancelled
)

func (s OrderStatus) String() string {
	switch s {
	case Open:
		return "OPEN"
	case PartiallyFilled:
		return "PARTIALLY_FILLED"
	case Filled:
		return "FILLED"
	case Closed:
		return "CLOSED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "PENDING"
	}
}

// Order is a value record. It is copyable, and is always copied (never
// shared by pointer) across the channel boundary into OrderBookUpdate
// events.
type Order struct {
	ID     OrderID
	UserID UserID
	Symbol SymbolID

	Side   Side
	Type   OrderType
	Status OrderStatus

	// Quantity is the current remaining size; OriginalQuantity is the size
	// at submission and is never mutated after creation.
	Quantity         float64
	OriginalQuantity float64

	// Price is present for LIMIT orders, nil for MARKET orders.
	Price *float64

	CreatedAt int64
	UpdatedAt int64
}

// NewOrder builds an Order the way a caller submits one: ID assigned by
// the caller (or NewID), status PENDING, timestamps stamped at creation.
func NewOrder(id OrderID, userID UserID, symbol SymbolID, side Side, typ OrderType, quantity float64, price *float64) Order {
	now := time.Now().Unix()
	return Order{
		ID:               id,
		UserID:           userID,
		Symbol:           symbol,
		Side:             side,
		Type:             typ,
		Status:           Pending,
		Quantity:         quantity,
		OriginalQuantity: quantity,
		Price:            price,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Clone returns a copy safe to hand to an independent goroutine. Order
// itself is a value type, but Price is a pointer, so it has to be copied
// separately or the clone would still alias the original's price.
func (o Order) Clone() Order {
	if o.Price != nil {
		p := *o.Price
		o.Price = &p
	}
	return o
}
