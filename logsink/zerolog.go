// Package logsink provides a structured-logging execctx.TraderObserver.
package logsink

import (
	"github.com/rs/zerolog"

	"matchcore/domain"
)

// ZerologSink fans a trader's notifications out to a structured logger. It
// implements execctx.TraderObserver.
type ZerologSink struct {
	log zerolog.Logger
}

// New returns a sink that logs as traderID, tagged on every event.
func New(log zerolog.Logger, traderID string) *ZerologSink {
	return &ZerologSink{log: log.With().Str("trader", traderID).Logger()}
}

func (s *ZerologSink) OnFill(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64) {
	s.log.Info().
		Str("side", side.String()).
		Str("style", style.String()).
		Uint64("order_id", orderID).
		Str("symbol", symbol).
		Int64("price", price).
		Uint64("quantity", quantity).
		Msg("fill")
}

func (s *ZerologSink) OnAllFilled(orderID uint64) {
	s.log.Info().Uint64("order_id", orderID).Msg("all_filled")
}

func (s *ZerologSink) OnOpen(orderID uint64, symbol string, price int64, quantity uint64) {
	s.log.Info().
		Uint64("order_id", orderID).
		Str("symbol", symbol).
		Int64("price", price).
		Uint64("quantity", quantity).
		Msg("open")
}

func (s *ZerologSink) OnCancel(side domain.Side, style domain.Style, orderID uint64, symbol string, price int64, quantity uint64, reason domain.CancelReason) {
	s.log.Info().
		Str("side", side.String()).
		Str("style", style.String()).
		Uint64("order_id", orderID).
		Str("symbol", symbol).
		Int64("price", price).
		Uint64("quantity", quantity).
		Str("reason", reason.String()).
		Msg("cancel")
}

func (s *ZerologSink) OnCancelReject(orderID uint64) {
	s.log.Warn().Uint64("order_id", orderID).Msg("cancel_reject")
}
