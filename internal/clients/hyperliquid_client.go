package clients

import (
	"context"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

// HyperliquidClient wraps the Hyperliquid SDK exchange handle. The SDK
// requires a signing key even for read-only market-data endpoints.
type HyperliquidClient struct {
	exchange    *hyperliquid.Exchange
	accountAddr string
}

// NewHyperliquidClient builds a Hyperliquid client from a hex-encoded private key.
func NewHyperliquidClient(privateKeyHex string, baseURL string) (*HyperliquidClient, error) {
	key, addr, err := deriveAccount(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive hyperliquid account")
	}

	// Info and SpotMeta are fetched lazily by the SDK
	ex := hyperliquid.NewExchange(
		context.Background(),
		key,
		baseURL,
		nil,
		"",
		addr,
		nil,
	)

	return &HyperliquidClient{exchange: ex, accountAddr: addr}, nil
}

// deriveAccount parses a hex private key (with or without 0x prefix) and
// derives the account address the SDK signs for.
func deriveAccount(privateKeyHex string) (*ecdsa.PrivateKey, string, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(privateKeyHex, "0x"), "0X")

	key, err := crypto.HexToECDSA(hex)
	if err != nil {
		return nil, "", err
	}

	pub, ok := key.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, "", errors.New("error casting public key to ECDSA")
	}

	return key, crypto.PubkeyToAddress(*pub).Hex(), nil
}

func (c *HyperliquidClient) Exchange() *hyperliquid.Exchange { return c.exchange }
func (c *HyperliquidClient) AccountAddress() string          { return c.accountAddr }
