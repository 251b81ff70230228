// Command bookdemo wires an OrderBookManager, places a handful of orders
// on a single symbol, subscribes to the trade stream, and logs a summary of
// the book once seeding is done. It stands in for the out-of-scope TCP
// client/server the original engine shipped; wire transport is explicitly
// not part of this engine (see DESIGN.md).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saiputravu/orderbook/internal/common"
	"github.com/saiputravu/orderbook/internal/config"
	"github.com/saiputravu/orderbook/internal/manager"
	"github.com/saiputravu/orderbook/internal/stream"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg := config.Default()
	m := manager.New(cfg.Channel.UpdateBufferSize)

	symbol := common.NewID()
	if err := m.NewOrderbook(symbol); err != nil {
		log.Fatal().Err(err).Msg("failed to create orderbook")
	}

	trades := stream.NewTrades(ctx, m, stream.WithBufferSize(cfg.Channel.SubscriptionBufferSize))
	defer trades.Stop()
	go func() {
		for trade := range trades.Out() {
			log.Info().
				Float64("price", trade.Price).
				Float64("quantity", trade.Quantity).
				Msg("trade executed")
		}
	}()

	seed(m, symbol)

	bids, mid, asks := mustSummarize(m, symbol)
	log.Info().
		Int("bidLevels", len(bids)).
		Int("askLevels", len(asks)).
		Float64("midPrice", mid).
		Msg("book summary")

	<-ctx.Done()
}

func seed(m *manager.OrderBookManager, symbol common.SymbolID) {
	orders := []struct {
		side  common.Side
		price float64
		qty   float64
	}{
		{common.Sell, 101, 4},
		{common.Sell, 100, 3},
		{common.Buy, 99, 2},
		{common.Buy, 100, 5}, // crosses the resting 100 ask
	}

	for _, spec := range orders {
		price := spec.price
		order := common.NewOrder(common.NewID(), common.NewID(), symbol, spec.side, common.LimitOrder, spec.qty, &price)
		if err := m.AddOrder(order); err != nil {
			log.Error().Err(err).Msg("seed order rejected")
		}
	}
}

func mustSummarize(m *manager.OrderBookManager, symbol common.SymbolID) ([]manager.LevelSummarized, float64, []manager.LevelSummarized) {
	summary, err := m.GetOrderbook(symbol)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to summarize orderbook")
	}
	return summary.Bids, summary.MidPrice, summary.Asks
}
