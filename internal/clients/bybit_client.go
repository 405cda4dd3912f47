package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewBybitClient creates a Bybit REST client.
func NewBybitClient(apiKey, apiSecret string) *bybit.Client {
	if apiKey == "" && apiSecret == "" {
		return bybit.NewClient()
	}
	return bybit.NewClient().WithAuth(apiKey, apiSecret)
}
