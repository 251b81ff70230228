package book

import (
	"github.com/tidwall/btree"

	"github.com/saiputravu/orderbook/internal/common"
)

// PriorityBookSide is the ordered container of resting orders on one side
// of one symbol's book: a single type for both buy and sell, parameterized
// by side. Price levels live in a balanced ordered map keyed by price
// (tidwall/btree.BTreeG) with a FIFO bucket of orders per level, plus an
// id -> price index so amend/cancel by id is O(log n) instead of a
// drain-mutate-reinsert over every level.
//
// Ordering: for Buy, higher price is better; for Sell, lower price is
// better. Within a price level, orders are FIFO (oldest first) - standard
// time priority.
type PriorityBookSide struct {
	side   common.Side
	levels *btree.BTreeG[*PriceLevel]
	index  map[common.OrderID]float64 // order id -> its price level's key

	numOrders int
	totalQty  float64
}

// NewPriorityBookSide constructs an empty side. side determines the price
// ordering: Buy sorts levels highest-first, Sell sorts lowest-first.
func NewPriorityBookSide(side common.Side) *PriorityBookSide {
	var less func(a, b *PriceLevel) bool
	if side == common.Buy {
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Price < b.Price }
	}
	return &PriorityBookSide{
		side:   side,
		levels: btree.NewBTreeG(less),
		index:  make(map[common.OrderID]float64),
	}
}

// Push inserts an order at its price level. O(log n).
func (s *PriorityBookSide) Push(order common.Order) {
	price := priceOf(order)
	if level, ok := s.levels.GetMut(&PriceLevel{Price: price}); ok {
		level.Orders = append(level.Orders, &order)
	} else {
		s.levels.Set(&PriceLevel{Price: price, Orders: []*common.Order{&order}})
	}
	s.index[order.ID] = price
	s.numOrders++
	s.totalQty += order.Quantity
}

// Peek returns a copy of the best order without removing it. O(log n):
// finding the best level walks the btree down to its first leaf, so Peek
// is not constant time.
func (s *PriorityBookSide) Peek() (common.Order, bool) {
	level, ok := s.levels.Min()
	if !ok || len(level.Orders) == 0 {
		return common.Order{}, false
	}
	return *level.Orders[0], true
}

// Pop removes and returns the best order. O(log n).
func (s *PriorityBookSide) Pop() (common.Order, bool) {
	level, ok := s.levels.MinMut()
	if !ok || len(level.Orders) == 0 {
		return common.Order{}, false
	}
	order := *level.Orders[0]
	level.removeAt(0)
	if len(level.Orders) == 0 {
		s.levels.Delete(level)
	}
	delete(s.index, order.ID)
	s.numOrders--
	s.totalQty -= order.Quantity
	return order, true
}

// Remove removes the order with the given id, wherever it rests. Removing
// a non-existent id is a no-op and reports ok=false. Callers still emit
// their cancel event regardless, so audit streams stay complete.
func (s *PriorityBookSide) Remove(id common.OrderID) (common.Order, bool) {
	price, ok := s.index[id]
	if !ok {
		return common.Order{}, false
	}
	level, ok := s.levels.GetMut(&PriceLevel{Price: price})
	if !ok {
		delete(s.index, id)
		return common.Order{}, false
	}
	i := level.indexOf(id)
	if i < 0 {
		delete(s.index, id)
		return common.Order{}, false
	}
	removed := *level.Orders[i]
	level.removeAt(i)
	if len(level.Orders) == 0 {
		s.levels.Delete(level)
	}
	delete(s.index, id)
	s.numOrders--
	s.totalQty -= removed.Quantity
	return removed, true
}

// Modify applies mutate to the order with the given id and re-establishes
// the ordering invariant. If mutate changes the order's price, the order
// is relocated to its new price level and appended to the back of that
// level's FIFO queue, losing its old time priority. A quantity-only
// mutate leaves the order's position untouched.
func (s *PriorityBookSide) Modify(id common.OrderID, mutate func(*common.Order)) (common.Order, bool) {
	price, ok := s.index[id]
	if !ok {
		return common.Order{}, false
	}
	level, ok := s.levels.GetMut(&PriceLevel{Price: price})
	if !ok {
		return common.Order{}, false
	}
	i := level.indexOf(id)
	if i < 0 {
		return common.Order{}, false
	}

	order := level.Orders[i]
	oldQty := order.Quantity
	mutate(order)
	s.totalQty += order.Quantity - oldQty

	newPrice := priceOf(*order)
	if newPrice == price {
		return *order, true
	}

	// Price moved: relocate to the correct level.
	moved := *order
	level.removeAt(i)
	if len(level.Orders) == 0 {
		s.levels.Delete(level)
	}
	if dst, ok := s.levels.GetMut(&PriceLevel{Price: newPrice}); ok {
		dst.Orders = append(dst.Orders, &moved)
	} else {
		s.levels.Set(&PriceLevel{Price: newPrice, Orders: []*common.Order{&moved}})
	}
	s.index[id] = newPrice
	return moved, true
}

// Retain removes every order for which keep returns false. O(n).
func (s *PriorityBookSide) Retain(keep func(common.Order) bool) {
	var emptied []*PriceLevel
	s.levels.Scan(func(level *PriceLevel) bool {
		filtered := level.Orders[:0]
		for _, o := range level.Orders {
			if keep(*o) {
				filtered = append(filtered, o)
			} else {
				s.totalQty -= o.Quantity
				s.numOrders--
				delete(s.index, o.ID)
			}
		}
		level.Orders = filtered
		if len(level.Orders) == 0 {
			emptied = append(emptied, level)
		}
		return true
	})
	for _, level := range emptied {
		s.levels.Delete(level)
	}
}

// IterSorted materializes a snapshot of every resting order, best-to-worst,
// FIFO within each level. O(n log n).
func (s *PriorityBookSide) IterSorted() []common.Order {
	out := make([]common.Order, 0, s.numOrders)
	s.levels.Scan(func(level *PriceLevel) bool {
		for _, o := range level.Orders {
			out = append(out, *o)
		}
		return true
	})
	return out
}

// Levels materializes a snapshot of every price level, best-to-worst.
func (s *PriorityBookSide) Levels() []*PriceLevel {
	out := make([]*PriceLevel, 0, s.levels.Len())
	s.levels.Scan(func(level *PriceLevel) bool {
		cp := &PriceLevel{Price: level.Price, Orders: append([]*common.Order(nil), level.Orders...)}
		out = append(out, cp)
		return true
	})
	return out
}

func (s *PriorityBookSide) Len() int               { return s.numOrders }
func (s *PriorityBookSide) IsEmpty() bool          { return s.numOrders == 0 }
func (s *PriorityBookSide) TotalQuantity() float64 { return s.totalQty }

func priceOf(o common.Order) float64 {
	if o.Price == nil {
		return 0
	}
	return *o.Price
}
