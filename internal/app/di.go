package app

import (
	"fmt"

	"vault-harvester/internal/harvest"
	"vault-harvester/internal/provider"
	"vault-harvester/internal/provider/hyperliquid"
	"vault-harvester/internal/saver"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideTableSaver creates TableSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideTableSaver(cfg *Config) (saver.TableSaver, error) {
	ts := saver.NewTableSaver(cfg.SaveFormat)
	if ts == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return ts, nil
}

// ProvideHyperliquidProvider creates the Hyperliquid-backed provider (for Wire).
// The returned cleanup closes its connections.
func ProvideHyperliquidProvider(cfg *Config) (*provider.HyperliquidProvider, func(), error) {
	p := provider.NewHyperliquidProvider(hyperliquid.Options{
		VaultsURL: cfg.VaultsURL,
		InfoURL:   cfg.InfoURL,
		UserAgent: cfg.UserAgent,
	})
	return p, func() { p.Close() }, nil
}

// ProvideHarvester wires the stages to a provider and a saver (for Wire).
func ProvideHarvester(cfg *Config, dp provider.DataProvider, ts saver.TableSaver) (*harvest.Harvester, error) {
	mode, err := harvest.ParseHeaderMode(cfg.DetailHeaderMode)
	if err != nil {
		return nil, err
	}
	return &harvest.Harvester{
		DP:         dp,
		Saver:      ts,
		Paths:      cfg.Paths(ts.Extension()),
		Location:   cfg.Location(),
		HeaderMode: mode,
	}, nil
}
