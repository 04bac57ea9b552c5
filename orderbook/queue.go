package orderbook

import (
	"container/list"

	"matchcore/domain"
)

// OrderQueue is the FIFO of resting orders at one price level on one side.
// A trader holds at most one resting order per (symbol, side, price) —
// OrderBook.Insert enforces this by routing a resubmission through Update
// instead of Push — so indexing by trader id is enough for O(1)
// containment, update and erase.
type OrderQueue struct {
	side     domain.Side
	orders   *list.List // list.Element.Value = *domain.Order
	byTrader map[string]*list.Element
	totalQty uint64
}

func newOrderQueue(side domain.Side) *OrderQueue {
	return &OrderQueue{
		side:     side,
		orders:   list.New(),
		byTrader: make(map[string]*list.Element),
	}
}

// Push appends o to the tail of the queue, behind any existing time
// priority.
func (q *OrderQueue) Push(o *domain.Order) {
	elem := q.orders.PushBack(o)
	q.byTrader[o.TraderID] = elem
	q.totalQty += o.Quantity
}

// Front returns the head of the queue, or nil if it is empty.
func (q *OrderQueue) Front() *domain.Order {
	e := q.orders.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*domain.Order)
}

// PopFront removes and returns the head of the queue.
func (q *OrderQueue) PopFront() *domain.Order {
	e := q.orders.Front()
	if e == nil {
		return nil
	}
	o := e.Value.(*domain.Order)
	q.orders.Remove(e)
	delete(q.byTrader, o.TraderID)
	q.totalQty -= o.Quantity
	return o
}

// Deduct reduces the queue's cached total quantity by qty. The caller is
// responsible for deducting the matching amount from the order itself;
// this only keeps totalQuantity (I2) in sync when a resting order is
// partially consumed without leaving the queue.
func (q *OrderQueue) Deduct(qty uint64) {
	q.totalQty -= qty
}

// ContainsTrader reports whether traderID already has an order resting in
// this queue.
func (q *OrderQueue) ContainsTrader(traderID string) bool {
	_, ok := q.byTrader[traderID]
	return ok
}

// EraseByTraderID removes traderID's resting order, if any, and reports
// whether one was found.
func (q *OrderQueue) EraseByTraderID(traderID string) bool {
	_, ok := q.eraseByTrader(traderID)
	return ok
}

func (q *OrderQueue) eraseByTrader(traderID string) (*domain.Order, bool) {
	e, ok := q.byTrader[traderID]
	if !ok {
		return nil, false
	}
	o := e.Value.(*domain.Order)
	q.orders.Remove(e)
	delete(q.byTrader, traderID)
	q.totalQty -= o.Quantity
	return o, true
}

// EraseByOrderID removes the order with this id, scanning the queue.
func (q *OrderQueue) EraseByOrderID(orderID uint64) bool {
	for e := q.orders.Front(); e != nil; e = e.Next() {
		o := e.Value.(*domain.Order)
		if o.OrderID == orderID {
			q.orders.Remove(e)
			delete(q.byTrader, o.TraderID)
			q.totalQty -= o.Quantity
			return true
		}
	}
	return false
}

// EraseBy removes the order only if both orderID and traderID match,
// reporting whether a match was found.
func (q *OrderQueue) EraseBy(orderID uint64, traderID string) bool {
	_, ok := q.eraseBy(orderID, traderID)
	return ok
}

func (q *OrderQueue) eraseBy(orderID uint64, traderID string) (*domain.Order, bool) {
	e, ok := q.byTrader[traderID]
	if !ok || e.Value.(*domain.Order).OrderID != orderID {
		return nil, false
	}
	o := e.Value.(*domain.Order)
	q.orders.Remove(e)
	delete(q.byTrader, traderID)
	q.totalQty -= o.Quantity
	return o, true
}

// Update demotes an existing order from the same trader to the tail of the
// queue at its new price/quantity, losing time priority — resubmission at
// an already-resting price level is treated as a fresh arrival, even if
// price and quantity are unchanged.
func (q *OrderQueue) Update(o *domain.Order) {
	q.EraseByTraderID(o.TraderID)
	q.Push(o)
}

func (q *OrderQueue) IsEmpty() bool         { return q.orders.Len() == 0 }
func (q *OrderQueue) Count() int            { return q.orders.Len() }
func (q *OrderQueue) TotalQuantity() uint64 { return q.totalQty }
