package provider

import (
	"vault-harvester/internal/provider/hyperliquid"
)

// HyperliquidProvider is a DataProvider implementation backed by the Hyperliquid API.
// It embeds *hyperliquid.Client to expose its calls with minimal boilerplate.
type HyperliquidProvider struct {
	*hyperliquid.Client
}

// NewHyperliquidProvider creates a new Hyperliquid-backed DataProvider.
func NewHyperliquidProvider(opts hyperliquid.Options) *HyperliquidProvider {
	return &HyperliquidProvider{
		Client: hyperliquid.NewClient(opts),
	}
}

// GetName returns provider name
func (p *HyperliquidProvider) GetName() string {
	return "Hyperliquid"
}
