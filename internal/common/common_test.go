package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderDefaults(t *testing.T) {
	price := 101.5
	id := NewID()
	user := NewID()
	symbol := NewID()

	o := NewOrder(id, user, symbol, Buy, LimitOrder, 10, &price)

	assert.Equal(t, id, o.ID)
	assert.Equal(t, Pending, o.Status)
	assert.Equal(t, 10.0, o.Quantity)
	assert.Equal(t, 10.0, o.OriginalQuantity)
	assert.NotNil(t, o.Price)
	assert.Equal(t, price, *o.Price)
}

func TestOrderCloneIsIndependent(t *testing.T) {
	price := 5.0
	o := NewOrder(NewID(), NewID(), NewID(), Sell, LimitOrder, 1, &price)

	clone := o.Clone()
	*clone.Price = 99.0

	assert.Equal(t, 5.0, *o.Price, "mutating the clone's price must not affect the original")
}

func TestDecimalRoundTrip(t *testing.T) {
	f := 123.456
	got := FromDecimal(ToDecimal(f))
	assert.InDelta(t, f, got, 1e-9)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "BUY", Buy.String())
	assert.Equal(t, "SELL", Sell.String())
}
