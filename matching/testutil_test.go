package matching

import "matchcore/domain"

type notification struct {
	kind     string
	side     domain.Side
	style    domain.Style
	orderID  uint64
	symbol   string
	price    int64
	quantity uint64
	reason   domain.CancelReason
}

// recordingObserver captures every notification delivered to one trader, in
// order, for assertions against spec scenarios.
type recordingObserver struct {
	events []notification
}

func (o *recordingObserver) OnFill(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64) {
	o.events = append(o.events, notification{kind: "FILL", side: side, style: style, orderID: orderID, symbol: symbol, price: price, quantity: quantity})
}

func (o *recordingObserver) OnAllFilled(orderID uint64) {
	o.events = append(o.events, notification{kind: "ALL_FILLED", orderID: orderID})
}

func (o *recordingObserver) OnOpen(orderID uint64, symbol string, price int64, quantity uint64) {
	o.events = append(o.events, notification{kind: "OPEN", orderID: orderID, symbol: symbol, price: price, quantity: quantity})
}

func (o *recordingObserver) OnCancel(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64, reason domain.CancelReason) {
	o.events = append(o.events, notification{kind: "CANCEL", side: side, style: style, orderID: orderID, symbol: symbol, price: price, quantity: quantity, reason: reason})
}

func (o *recordingObserver) OnCancelReject(orderID uint64) {
	o.events = append(o.events, notification{kind: "CANCEL_REJECT", orderID: orderID})
}

func (o *recordingObserver) kinds() []string {
	kinds := make([]string, len(o.events))
	for i, e := range o.events {
		kinds[i] = e.kind
	}
	return kinds
}
