package execctx

import "matchcore/domain"

// ExecutionContext is the trader registry and notification fan-out.
// Notifications to an unknown trader id are silently dropped -- delivery
// is a best-effort side channel, never a source of engine errors.
type ExecutionContext struct {
	traders map[string]*Trader
}

func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{traders: make(map[string]*Trader)}
}

// AddTraders registers traders with no external observer attached.
func (c *ExecutionContext) AddTraders(ids ...string) {
	for _, id := range ids {
		if _, ok := c.traders[id]; !ok {
			c.traders[id] = newTrader(id)
		}
	}
}

// AddTraderWithObserver registers (or replaces) a trader whose
// notifications also fan out to obs.
func (c *ExecutionContext) AddTraderWithObserver(id string, obs TraderObserver) {
	c.traders[id] = &Trader{ID: id, Observer: obs}
}

// Trader looks up a registered trader by id.
func (c *ExecutionContext) Trader(id string) (*Trader, bool) {
	t, ok := c.traders[id]
	return t, ok
}

func (c *ExecutionContext) NotifyFill(side domain.Side, style domain.Style, traderID string, orderID uint64, symbol string, price int64, quantity uint64) {
	t, ok := c.traders[traderID]
	if !ok {
		return
	}
	t.recordFill(side, FillEvent{OrderID: orderID, Symbol: symbol, Price: price, Quantity: quantity})
	if t.Observer != nil {
		t.Observer.OnFill(side, style, orderID, symbol, price, quantity)
	}
}

func (c *ExecutionContext) NotifyAllFilled(traderID string, orderID uint64) {
	t, ok := c.traders[traderID]
	if !ok {
		return
	}
	t.removeOpen(orderID)
	if t.Observer != nil {
		t.Observer.OnAllFilled(orderID)
	}
}

func (c *ExecutionContext) NotifyOpen(side domain.Side, traderID string, orderID uint64, symbol string, price int64, quantity uint64) {
	t, ok := c.traders[traderID]
	if !ok {
		return
	}
	t.addOpen(side, OpenPosition{OrderID: orderID, Symbol: symbol, Price: price, Quantity: quantity})
	if t.Observer != nil {
		t.Observer.OnOpen(orderID, symbol, price, quantity)
	}
}

func (c *ExecutionContext) NotifyCancel(side domain.Side, style domain.Style, traderID string, orderID uint64, symbol string, price int64, quantity uint64, reason domain.CancelReason) {
	t, ok := c.traders[traderID]
	if !ok {
		return
	}
	if style == domain.Limit {
		t.removeOpen(orderID)
	}
	if t.Observer != nil {
		t.Observer.OnCancel(side, style, orderID, symbol, price, quantity, reason)
	}
}

func (c *ExecutionContext) NotifyCancelReject(traderID string, orderID uint64) {
	t, ok := c.traders[traderID]
	if !ok {
		return
	}
	if t.Observer != nil {
		t.Observer.OnCancelReject(orderID)
	}
}
