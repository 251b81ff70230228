// Package common holds the value types shared by every layer of the
// matching engine: identifiers, orders, trades, and the update records the
// engine emits.
package common

import "github.com/google/uuid"

// OrderID, UserID, SymbolID, and TradeID are 128-bit opaque identifiers.
// Comparison is by value equality only. Don't derive an ordering from them.
type (
	OrderID  = uuid.UUID
	UserID   = uuid.UUID
	SymbolID = uuid.UUID
	TradeID  = uuid.UUID
)

// NewID generates a time-ordered 128-bit identifier (UUIDv7). Callers may
// also supply their own IDs; the engine never assumes uniqueness itself
// (see the manager's (symbol, side, id) amend/cancel signature).
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
