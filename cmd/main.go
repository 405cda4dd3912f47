// Command marketpulse turns raw exchange price/volume data into a daily
// analytical report: aligned bars, MACD momentum, volume regimes, data
// quality and momentum signals.
//
// Usage:
//
//	marketpulse --config config.yaml
//	marketpulse --platform binance --pair BTC_USDT --timezone Europe/Berlin --offset 7h
//	marketpulse setup
//
// Optional environment variables:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
//	For Hyperliquid: HYPERLIQUID_PRIVATE_KEY, HYPERLIQUID_API_URL
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/vadiminshakov/marketpulse/config"
	"github.com/vadiminshakov/marketpulse/internal"
	"github.com/vadiminshakov/marketpulse/internal/clients"
	"github.com/vadiminshakov/marketpulse/internal/render"
	"github.com/vadiminshakov/marketpulse/internal/services/market/analysis"
	"github.com/vadiminshakov/marketpulse/internal/services/market/collector"
	"github.com/vadiminshakov/marketpulse/internal/services/pipeline"
	"github.com/vadiminshakov/marketpulse/internal/setup"
)

const defaultHyperliquidAPIURL = "https://api.hyperliquid.xyz"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	configs, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	analyzer := analysis.NewMarketAnalyzer(logger)

	for _, cfg := range configs {
		client, err := buildClient(cfg.Platform)
		if err != nil {
			logger.Fatal("failed to build platform client", zap.String("platform", cfg.Platform), zap.Error(err))
		}
		provider, err := internal.ProviderFor(client)
		if err != nil {
			logger.Fatal("failed to build observation provider", zap.Error(err))
		}

		observations, err := collector.New(provider, cfg.Pair).Fetch(context.Background(), cfg.Interval, cfg.Limit)
		if err != nil {
			// data-source failure: skip the instrument, never run the core
			logger.Error("data source failed, skipping instrument",
				zap.String("pair", cfg.Pair.String()), zap.Error(err))
			continue
		}

		p, err := pipeline.New(cfg.Pipeline(), logger)
		if err != nil {
			logger.Fatal("invalid pipeline configuration", zap.Error(err))
		}
		result, err := p.Run(observations)
		if err != nil {
			logger.Error("pipeline failed", zap.String("pair", cfg.Pair.String()), zap.Error(err))
			continue
		}

		var summary *analysis.Summary
		if s, err := analyzer.Summarize(result.Bars); err == nil {
			summary = &s
		} else {
			logger.Warn("supplemental summary skipped", zap.Error(err))
		}

		fmt.Println(render.Report(cfg.Pair, result, summary))
	}
}

func buildClient(platform string) (any, error) {
	switch platform {
	case "binance":
		return clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET")), nil
	case "bybit":
		return clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET")), nil
	case "hyperliquid":
		key := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
		if key == "" {
			return nil, fmt.Errorf("HYPERLIQUID_PRIVATE_KEY environment variable must be set")
		}
		apiURL := os.Getenv("HYPERLIQUID_API_URL")
		if apiURL == "" {
			apiURL = defaultHyperliquidAPIURL
		}
		return clients.NewHyperliquidClient(key, apiURL)
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}
}
