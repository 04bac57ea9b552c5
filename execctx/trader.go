// Package execctx is the trader registry and notification fan-out sitting
// between the matching engine and whatever external sink (logging, a
// client connection, a test harness) ultimately cares about fill, open and
// cancel events.
package execctx

import "matchcore/domain"

// FillEvent is one fill notification recorded against a trader. A
// partially filled order contributes one entry per partial fill, not one
// entry per order.
type FillEvent struct {
	OrderID  uint64
	Symbol   string
	Price    int64
	Quantity uint64
}

// OpenPosition mirrors one resting order for cancellation bookkeeping.
type OpenPosition struct {
	OrderID  uint64
	Symbol   string
	Price    int64
	Quantity uint64
}

// TraderObserver is an optional external sink a Trader fans every
// notification out to in addition to its own bookkeeping. The engine never
// talks to an observer directly -- only ExecutionContext does.
type TraderObserver interface {
	OnFill(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64)
	OnAllFilled(orderID uint64)
	OnOpen(orderID uint64, symbol string, price int64, quantity uint64)
	OnCancel(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64, reason domain.CancelReason)
	OnCancelReject(orderID uint64)
}

// Trader is the registry's per-participant record. FilledBuy/FilledSell are
// append-only; OpenBuy/OpenSell mirror resting positions and shrink as
// orders fill completely or are cancelled.
type Trader struct {
	ID         string
	Observer   TraderObserver
	FilledBuy  []FillEvent
	FilledSell []FillEvent
	OpenBuy    []OpenPosition
	OpenSell   []OpenPosition
}

func newTrader(id string) *Trader {
	return &Trader{ID: id}
}

func (t *Trader) openList(side domain.Side) *[]OpenPosition {
	if side == domain.Buy {
		return &t.OpenBuy
	}
	return &t.OpenSell
}

func (t *Trader) addOpen(side domain.Side, p OpenPosition) {
	list := t.openList(side)
	*list = append(*list, p)
}

func (t *Trader) removeOpen(orderID uint64) {
	for _, side := range [...]domain.Side{domain.Buy, domain.Sell} {
		list := t.openList(side)
		for i, p := range *list {
			if p.OrderID == orderID {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func (t *Trader) recordFill(side domain.Side, e FillEvent) {
	if side == domain.Buy {
		t.FilledBuy = append(t.FilledBuy, e)
	} else {
		t.FilledSell = append(t.FilledSell, e)
	}
}
