// Package matching implements the single-threaded matching engine: one
// order book per symbol, price-time-priority matching, and self-trade
// prevention. An Engine is not reentrant -- callers must not invoke its
// methods from inside a notification callback.
package matching

import (
	"matchcore/domain"
	"matchcore/execctx"
	"matchcore/orderbook"
)

// Engine orchestrates every symbol's order book, the process-wide order id
// counter and the self-trade-prevention policy.
type Engine struct {
	books map[string]*orderbook.OrderBook
	ids   orderIDGenerator
	stp   STPConfig
}

func NewEngine(stp STPConfig) *Engine {
	return &Engine{books: make(map[string]*orderbook.OrderBook), stp: stp}
}

func (e *Engine) bookFor(symbol string) *orderbook.OrderBook {
	b, ok := e.books[symbol]
	if !ok {
		b = orderbook.NewOrderBook(symbol)
		e.books[symbol] = b
	}
	return b
}

// Book returns the order book for symbol, creating it if this is the first
// time symbol has been seen.
func (e *Engine) Book(symbol string) *orderbook.OrderBook {
	return e.bookFor(symbol)
}

// SubmitLimit enters a limit order, matching it immediately against
// crossing resting liquidity and resting any residual. A zero price or
// zero quantity is a silent validation reject: the current id-counter
// value is returned without allocating an id or emitting any
// notification.
func (e *Engine) SubmitLimit(ctx *execctx.ExecutionContext, side domain.Side, traderID, symbol string, price int64, quantity uint64) uint64 {
	if price == 0 || quantity == 0 {
		return e.ids.current()
	}

	orderID := e.ids.next()
	order := domain.NewLimitOrder(orderID, traderID, symbol, side, price, quantity)

	book := e.bookFor(symbol)
	e.match(ctx, book, &order)

	if !order.IsFilled() {
		book.Insert(&order)
		ctx.NotifyOpen(order.Side, order.TraderID, order.OrderID, order.Symbol, order.Price, order.Quantity)
	}

	return orderID
}

// SubmitMarket enters a market order. Its Price field is informational
// only: it starts at the opposite side's best price (0 if that side is
// empty) and is reset to each level's price as the order sweeps through
// it, purely for notification and self-trade-prevention bookkeeping.
// Market orders never rest; any unfilled residual is cancelled with
// NoOrderToMatchMarketOrder.
func (e *Engine) SubmitMarket(ctx *execctx.ExecutionContext, side domain.Side, traderID, symbol string, quantity uint64) uint64 {
	orderID := e.ids.next()
	book := e.bookFor(symbol)

	startPrice := int64(0)
	if best, _, ok := book.Best(side.Opposite()); ok {
		startPrice = best
	}
	order := domain.NewMarketOrder(orderID, traderID, symbol, side, startPrice, quantity)

	e.match(ctx, book, &order)

	if !order.IsFilled() {
		ctx.NotifyCancel(order.Side, order.Style, order.TraderID, order.OrderID, order.Symbol, order.Price, order.Quantity, domain.NoOrderToMatchMarketOrder)
	}

	return orderID
}

// Cancel pulls a specific resting order from its symbol's book. A request
// for an order id/trader id pair that isn't resting produces
// NotifyCancelReject instead.
func (e *Engine) Cancel(ctx *execctx.ExecutionContext, req domain.OrderCancelRequest) {
	book := e.bookFor(req.Symbol)
	order, ok := book.RemoveOrder(req.OrderID, req.TraderID)
	if !ok {
		ctx.NotifyCancelReject(req.TraderID, req.OrderID)
		return
	}
	ctx.NotifyCancel(order.Side, order.Style, order.TraderID, order.OrderID, order.Symbol, order.Price, order.Quantity, domain.CancelRequestReason)
}

// crosses reports whether a resting level priced at levelPrice would
// execute against an order on side limited at aggressorPrice: a BUY
// crosses when its limit is at or above the ask; a SELL crosses when its
// limit is at or below the bid.
func crosses(side domain.Side, aggressorPrice, levelPrice int64) bool {
	if side == domain.Buy {
		return aggressorPrice >= levelPrice
	}
	return aggressorPrice <= levelPrice
}

// fillPrice is the price a trade against restingPrice prints at: the
// resting order's price always wins. Written as the side-conditional
// min/max rule rather than simply returning restingPrice to make that
// invariant explicit at the call site.
func fillPrice(aggressor *domain.Order, restingPrice int64) int64 {
	if aggressor.Side == domain.Buy {
		return min(restingPrice, aggressor.Price)
	}
	return max(restingPrice, aggressor.Price)
}

// match sweeps order against the opposite side of book until order is
// exhausted, the book side runs dry, a limit order no longer crosses the
// best remaining level, or self-trade prevention cancels the aggressor.
func (e *Engine) match(ctx *execctx.ExecutionContext, book *orderbook.OrderBook, order *domain.Order) {
	opposite := order.Side.Opposite()
	aggressorCancelled := false

	for order.Quantity > 0 {
		price, queue, ok := book.Best(opposite)
		if !ok {
			break
		}
		if order.Style == domain.Limit && !crosses(order.Side, order.Price, price) {
			break
		}
		if order.Style == domain.Market {
			order.Price = price
		}

		if e.matchLevel(ctx, queue, order) {
			aggressorCancelled = true
		}

		book.RemovePriceLevel(opposite, price)

		if aggressorCancelled {
			break
		}
	}

	if order.IsFilled() && !aggressorCancelled {
		ctx.NotifyAllFilled(order.TraderID, order.OrderID)
	}
}

// matchLevel drains queue against order's remaining quantity, checking
// self-trade prevention ahead of every head examination. It returns true
// if the aggressor was cancelled by self-trade prevention, in which case
// the caller must stop sweeping further levels.
func (e *Engine) matchLevel(ctx *execctx.ExecutionContext, queue *orderbook.OrderQueue, order *domain.Order) bool {
	for order.Quantity > 0 && !queue.IsEmpty() {
		head := queue.Front()

		if e.stp.Enable && head.TraderID == order.TraderID {
			h := selfTradeHandler{ctx: ctx}
			if h.dispatch(e.stp.Policy, head.Side, queue, order) {
				return true
			}
			continue
		}

		matched := min(head.Quantity, order.Quantity)
		price := fillPrice(order, head.Price)

		ctx.NotifyFill(head.Side, head.Style, head.TraderID, head.OrderID, order.Symbol, head.Price, matched)
		head.Quantity -= matched
		queue.Deduct(matched)
		if head.Quantity == 0 {
			ctx.NotifyAllFilled(head.TraderID, head.OrderID)
			queue.PopFront()
		}

		ctx.NotifyFill(order.Side, order.Style, order.TraderID, order.OrderID, order.Symbol, price, matched)
		order.Quantity -= matched
	}
	return false
}
