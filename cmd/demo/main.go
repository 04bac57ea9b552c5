// Command demo wires config, logsink and matching together and walks
// through an exact match, a price-improving match and a self-trade to show
// the engine end to end.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/execctx"
	"matchcore/logsink"
	"matchcore/matching"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load("configs/engine.yaml")
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logger = logger.Level(level)
	}

	stp, err := cfg.STPConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("parse self-trade policy")
	}

	engine := matching.NewEngine(stp)
	ctx := execctx.NewExecutionContext()

	for _, trader := range []string{"maker", "taker", "wash"} {
		ctx.AddTraderWithObserver(trader, logsink.New(logger, trader))
	}

	logger.Info().Msg("--- exact match ---")
	engine.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 100, 10)
	engine.SubmitLimit(ctx, domain.Buy, "taker", "ACME", 100, 10)

	logger.Info().Msg("--- price improvement ---")
	engine.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 95, 10)
	engine.SubmitLimit(ctx, domain.Buy, "taker", "ACME", 100, 10)

	logger.Info().Msg("--- self-trade prevention ---")
	engine.SubmitLimit(ctx, domain.Sell, "wash", "ACME", 90, 5)
	engine.SubmitLimit(ctx, domain.Buy, "wash", "ACME", 90, 5)

	logger.Info().Msg("--- market sweep ---")
	engine.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 101, 5)
	engine.SubmitLimit(ctx, domain.Sell, "maker", "ACME", 102, 5)
	engine.SubmitMarket(ctx, domain.Buy, "taker", "ACME", 15)
}
