// Package book implements PriorityBookSide, the ordered container of
// resting orders on one side of one symbol's book.
package book

import "github.com/saiputravu/orderbook/internal/common"

// PriceLevel groups every resting order at one price, queued oldest first.
// Orders at the same price match in the order they arrived.
type PriceLevel struct {
	Price  float64
	Orders []*common.Order
}

// totalQuantity sums the remaining quantity of every order at this level.
func (l *PriceLevel) totalQuantity() float64 {
	var total float64
	for _, o := range l.Orders {
		total += o.Quantity
	}
	return total
}

// indexOf returns the position of the order with the given id, or -1.
func (l *PriceLevel) indexOf(id common.OrderID) int {
	for i, o := range l.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// removeAt removes the order at index i, preserving FIFO order of the
// remainder.
func (l *PriceLevel) removeAt(i int) {
	l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
}
