package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/domain"
	"matchcore/execctx"
)

func newTestEngine(stp STPConfig, traders ...string) (*Engine, *execctx.ExecutionContext, map[string]*recordingObserver) {
	ctx := execctx.NewExecutionContext()
	observers := make(map[string]*recordingObserver, len(traders))
	for _, id := range traders {
		obs := &recordingObserver{}
		observers[id] = obs
		ctx.AddTraderWithObserver(id, obs)
	}
	return NewEngine(stp), ctx, observers
}

// Scenario: exact match. A resting SELL LIMIT is fully consumed by a BUY
// LIMIT of the same price and quantity; both sides fill completely and the
// book ends empty.
func TestScenarioExactMatch(t *testing.T) {
	e, ctx, obs := newTestEngine(STPConfig{}, "maker", "taker")

	e.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 100, 10)
	e.SubmitLimit(ctx, domain.Buy, "taker", "ACME", 100, 10)

	assert.Equal(t, []string{"OPEN"}, obs["maker"].kinds()[:1])
	assert.Contains(t, obs["maker"].kinds(), "FILL")
	assert.Contains(t, obs["maker"].kinds(), "ALL_FILLED")
	assert.Contains(t, obs["taker"].kinds(), "FILL")
	assert.Contains(t, obs["taker"].kinds(), "ALL_FILLED")
	assert.NotContains(t, obs["taker"].kinds(), "OPEN", "a fully filled aggressor never rests")

	book := e.Book("ACME")
	assert.True(t, book.IsEmpty(domain.Buy))
	assert.True(t, book.IsEmpty(domain.Sell))
}

// Scenario: partial fill. A resting order bigger than the aggressor leaves
// a residual resting at the same price.
func TestScenarioPartialFillLeavesResidual(t *testing.T) {
	e, ctx, obs := newTestEngine(STPConfig{}, "maker", "taker")

	e.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 100, 10)
	e.SubmitLimit(ctx, domain.Buy, "taker", "ACME", 100, 4)

	assert.NotContains(t, obs["maker"].kinds(), "ALL_FILLED", "maker still has quantity resting")
	assert.Contains(t, obs["taker"].kinds(), "ALL_FILLED")

	price, queue, ok := e.Book("ACME").Best(domain.Sell)
	require.True(t, ok)
	assert.Equal(t, int64(100), price)
	assert.Equal(t, uint64(6), queue.Front().Quantity)
}

// Scenario: price improvement. A BUY aggressor with a higher limit than
// the resting ask still prints at the resting (lower) ask price.
func TestScenarioPriceImprovement(t *testing.T) {
	e, ctx, obs := newTestEngine(STPConfig{}, "maker", "taker")

	e.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 95, 10)
	e.SubmitLimit(ctx, domain.Buy, "taker", "ACME", 100, 10)

	var takerFill notification
	for _, ev := range obs["taker"].events {
		if ev.kind == "FILL" {
			takerFill = ev
		}
	}
	assert.Equal(t, int64(95), takerFill.price, "the resting ask price wins, not the aggressor's limit")
}

// Scenario: a market order sweeps multiple resting price levels, re-pricing
// at each level it touches, and is cancelled for any quantity left
// unmatched once the book side is exhausted.
func TestScenarioMarketOrderSweepsLevelsAndCancelsResidual(t *testing.T) {
	e, ctx, obs := newTestEngine(STPConfig{}, "low", "high", "taker")

	e.SubmitLimit(ctx, domain.Sell, "low", "ACME", 100, 5)
	e.SubmitLimit(ctx, domain.Sell, "high", "ACME", 105, 5)

	e.SubmitMarket(ctx, domain.Buy, "taker", "ACME", 20)

	var prices []int64
	for _, ev := range obs["taker"].events {
		if ev.kind == "FILL" {
			prices = append(prices, ev.price)
		}
	}
	assert.Equal(t, []int64{100, 105}, prices)
	assert.Contains(t, obs["taker"].kinds(), "CANCEL", "unmatched residual is cancelled, not rested")

	var cancelReason domain.CancelReason
	for _, ev := range obs["taker"].events {
		if ev.kind == "CANCEL" {
			cancelReason = ev.reason
		}
	}
	assert.Equal(t, domain.NoOrderToMatchMarketOrder, cancelReason)
	assert.True(t, e.Book("ACME").IsEmpty(domain.Sell))
}

// Scenario: cancel is idempotent -- a second cancel of the same order
// yields CANCEL_REJECT rather than a second CANCEL.
func TestScenarioCancelThenCancelAgainRejects(t *testing.T) {
	e, ctx, obs := newTestEngine(STPConfig{}, "maker")

	orderID := e.SubmitLimit(ctx, domain.Buy, "maker", "ACME", 100, 10)
	e.Cancel(ctx, domain.OrderCancelRequest{OrderID: orderID, Symbol: "ACME", TraderID: "maker"})
	e.Cancel(ctx, domain.OrderCancelRequest{OrderID: orderID, Symbol: "ACME", TraderID: "maker"})

	assert.Equal(t, []string{"OPEN", "CANCEL", "CANCEL_REJECT"}, obs["maker"].kinds())
}

// Scenario: a resubmission at an already-resting price level loses time
// priority even when price and quantity are unchanged.
func TestScenarioResubmissionLosesTimePriority(t *testing.T) {
	e, ctx, _ := newTestEngine(STPConfig{}, "alice", "bob", "taker")

	e.SubmitLimit(ctx, domain.Sell, "alice", "ACME", 100, 10)
	e.SubmitLimit(ctx, domain.Sell, "bob", "ACME", 100, 10)
	e.SubmitLimit(ctx, domain.Sell, "alice", "ACME", 100, 10)

	_, queue, ok := e.Book("ACME").Best(domain.Sell)
	require.True(t, ok)
	front := queue.Front()
	assert.Equal(t, "bob", front.TraderID, "alice's resubmission moved behind bob despite identical terms")
}

func TestSubmitLimitRejectsZeroPriceOrQuantity(t *testing.T) {
	e, ctx, _ := newTestEngine(STPConfig{}, "alice")

	firstID := e.SubmitLimit(ctx, domain.Buy, "alice", "ACME", 100, 1)
	rejectedID := e.SubmitLimit(ctx, domain.Buy, "alice", "ACME", 0, 5)
	rejectedQtyID := e.SubmitLimit(ctx, domain.Buy, "alice", "ACME", 100, 0)

	assert.Equal(t, firstID+1, rejectedID, "a validation reject does not consume an order id")
	assert.Equal(t, firstID+1, rejectedQtyID, "a zero-quantity reject does not consume an order id")
}
