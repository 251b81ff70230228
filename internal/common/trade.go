package common

import "time"

// TradeStatus tracks settlement state. The matching engine itself only ever
// produces Swapped (a completed match). Pending and Failed exist for
// downstream settlement to report back through; settlement itself is not
// this engine's job.
type TradeStatus int

const (
	TradePending TradeStatus = iota
	TradeSwapped
	TradeFailed
)

func (s TradeStatus) String() string {
	switch s {
	case TradeSwapped:
		return "SWAPPED"
	case TradeFailed:
		return "FAILED"
	default:
		return "PENDING"
	}
}

// Trade is a value record describing one crossing between a resting order
// and an aggressor. ID is optional: the engine does not assign trade IDs
// itself, callers that need one can stamp it on via WithID.
type Trade struct {
	ID *TradeID

	BuyOrderID  OrderID
	SellOrderID OrderID
	BuyUserID   UserID
	SellUserID  UserID

	Price    float64
	Quantity float64
	Symbol   SymbolID
	Status   TradeStatus

	CreatedAt int64
	UpdatedAt int64
}

// NewTrade builds a Trade the way the matcher does: status SWAPPED, both
// timestamps stamped at the moment of the cross.
func NewTrade(symbol SymbolID, buyOrderID, sellOrderID OrderID, buyUserID, sellUserID UserID, price, quantity float64) Trade {
	now := time.Now().Unix()
	return Trade{
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		BuyUserID:   buyUserID,
		SellUserID:  sellUserID,
		Price:       price,
		Quantity:    quantity,
		Symbol:      symbol,
		Status:      TradeSwapped,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithID returns a copy of the trade stamped with the given ID.
func (t Trade) WithID(id TradeID) Trade {
	t.ID = &id
	return t
}
