// Package orderbook implements the per-symbol, two-sided price-level index
// a matching engine matches and rests orders against.
package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"matchcore/domain"
)

func ascendingInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// PriceLevel is a read-only snapshot of one resting price level, used for
// depth reporting.
type PriceLevel struct {
	Price    int64
	Quantity uint64
	Orders   int
}

// OrderBook is the per-symbol order index. Both sides are backed by the
// same ascending-price red-black tree; "best" differs only in which end of
// the tree each side reads from, so one comparator serves both sides
// instead of a descending variant reserved for bids.
type OrderBook struct {
	symbol string
	bid    *rbt.Tree[int64, *OrderQueue]
	ask    *rbt.Tree[int64, *OrderQueue]
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bid:    rbt.NewWith[int64, *OrderQueue](ascendingInt64),
		ask:    rbt.NewWith[int64, *OrderQueue](ascendingInt64),
	}
}

func (b *OrderBook) Symbol() string { return b.symbol }

func (b *OrderBook) treeFor(side domain.Side) *rbt.Tree[int64, *OrderQueue] {
	if side == domain.Buy {
		return b.bid
	}
	return b.ask
}

// Insert rests a limit order in the book. Market orders never rest and are
// silently ignored. A trader that already has an order resting at this
// exact price level loses time priority via OrderQueue.Update.
func (b *OrderBook) Insert(o *domain.Order) {
	if o.Style != domain.Limit {
		return
	}
	tree := b.treeFor(o.Side)
	q, found := tree.Get(o.Price)
	if !found {
		q = newOrderQueue(o.Side)
		tree.Put(o.Price, q)
	}
	if q.ContainsTrader(o.TraderID) {
		q.Update(o)
	} else {
		q.Push(o)
	}
}

// Best returns the best price and its queue on side, or ok=false if side
// has no resting orders.
func (b *OrderBook) Best(side domain.Side) (price int64, queue *OrderQueue, ok bool) {
	tree := b.treeFor(side)
	var node *rbt.Node[int64, *OrderQueue]
	if side == domain.Buy {
		node = tree.Right()
	} else {
		node = tree.Left()
	}
	if node == nil {
		return 0, nil, false
	}
	return node.Key, node.Value, true
}

// Search returns the level on side that a new order resting or sweeping at
// px would first encounter: the highest bid at or below px, or the lowest
// ask at or above px.
func (b *OrderBook) Search(side domain.Side, px int64) (price int64, queue *OrderQueue, ok bool) {
	tree := b.treeFor(side)
	var node *rbt.Node[int64, *OrderQueue]
	var found bool
	if side == domain.Buy {
		node, found = tree.Floor(px)
	} else {
		node, found = tree.Ceiling(px)
	}
	if !found {
		return 0, nil, false
	}
	return node.Key, node.Value, true
}

// RemovePriceLevel deletes price from side if, and only if, its queue is
// actually empty. Safe to call speculatively after a partial drain.
func (b *OrderBook) RemovePriceLevel(side domain.Side, price int64) {
	tree := b.treeFor(side)
	if q, ok := tree.Get(price); ok && q.IsEmpty() {
		tree.Remove(price)
	}
}

// RemoveOrder cancels a specific resting order by (orderID, traderID),
// scanning both sides since the caller isn't required to know which side
// the order rests on. Returns the removed order for notification purposes.
func (b *OrderBook) RemoveOrder(orderID uint64, traderID string) (*domain.Order, bool) {
	if o, ok := b.removeFrom(domain.Buy, orderID, traderID); ok {
		return o, true
	}
	return b.removeFrom(domain.Sell, orderID, traderID)
}

func (b *OrderBook) removeFrom(side domain.Side, orderID uint64, traderID string) (*domain.Order, bool) {
	tree := b.treeFor(side)
	it := tree.Iterator()
	for it.Next() {
		price, q := it.Key(), it.Value()
		if o, ok := q.eraseBy(orderID, traderID); ok {
			if q.IsEmpty() {
				tree.Remove(price)
			}
			return o, true
		}
	}
	return nil, false
}

// NumLevels returns the number of distinct resting price levels on side.
func (b *OrderBook) NumLevels(side domain.Side) int {
	return b.treeFor(side).Size()
}

// IsEmpty reports whether side has no resting orders.
func (b *OrderBook) IsEmpty(side domain.Side) bool {
	return b.treeFor(side).Empty()
}

// Clear removes every resting order from both sides.
func (b *OrderBook) Clear() {
	b.bid = rbt.NewWith[int64, *OrderQueue](ascendingInt64)
	b.ask = rbt.NewWith[int64, *OrderQueue](ascendingInt64)
}

// Depth returns up to maxLevels price levels on side, best first. A
// maxLevels of 0 or less returns every level.
func (b *OrderBook) Depth(side domain.Side, maxLevels int) []PriceLevel {
	tree := b.treeFor(side)
	levels := make([]PriceLevel, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		q := it.Value()
		levels = append(levels, PriceLevel{Price: it.Key(), Quantity: q.TotalQuantity(), Orders: q.Count()})
	}
	// The tree iterates ascending regardless of side; bids read best-first
	// from the top of the range, so reverse for that side only.
	if side == domain.Buy {
		for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
			levels[i], levels[j] = levels[j], levels[i]
		}
	}
	if maxLevels > 0 && maxLevels < len(levels) {
		levels = levels[:maxLevels]
	}
	return levels
}
