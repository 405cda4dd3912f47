// Package internal wires platform clients to the services that consume them.
package internal

import (
	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/marketpulse/internal/clients"
	"github.com/vadiminshakov/marketpulse/internal/services/market/collector"
)

// ProviderFor returns the observation provider matching the platform client.
// This is the single point of truth for dispatching to platform-specific
// implementations.
func ProviderFor(client any) (collector.ObservationProvider, error) {
	switch c := client.(type) {
	case *binance.Client:
		return collector.NewBinanceProvider(c), nil
	case *bybit.Client:
		return collector.NewBybitProvider(c), nil
	case *clients.HyperliquidClient:
		return collector.NewHyperliquidProvider(c.Exchange().Info()), nil
	default:
		return nil, errors.Errorf("unsupported client type %T", client)
	}
}
