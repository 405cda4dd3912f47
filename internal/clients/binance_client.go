// Package clients constructs exchange API clients for the data-source
// boundary.
package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates a Binance REST client. Kline endpoints are public,
// so empty credentials are acceptable.
func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	return binance.NewClient(apiKey, apiSecret)
}
