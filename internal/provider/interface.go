package provider

import (
	"context"

	"vault-harvester/internal/provider/hyperliquid"
)

// DataProvider is the abstraction used by the harvest stages when accessing the vault API.
// Every call is a single attempt; implementations own their own timeouts and resource cleanup.
type DataProvider interface {
	GetName() string
	ListVaults(ctx context.Context) ([]hyperliquid.VaultEntry, error)
	VaultDetails(ctx context.Context, vaultAddress string) (*hyperliquid.VaultDetails, error)
	UserFillsByTime(ctx context.Context, user string) ([]hyperliquid.Fill, error)
	Close() error
}
