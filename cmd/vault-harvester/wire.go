//go:build wireinject
// +build wireinject

package main

import (
	"vault-harvester/internal/app"
	"vault-harvester/internal/provider"

	"github.com/google/wire"
)

// InitializeApp builds App (Config + DataProvider + Harvester) via Wire.
// Caller must call the returned cleanup when done.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideTableSaver,
		app.ProvideHyperliquidProvider,
		app.ProvideHarvester,
		wire.Bind(new(provider.DataProvider), new(*provider.HyperliquidProvider)),
		wire.Struct(new(App), "Config", "DP", "Harvester"),
	)
	return nil, nil, nil
}
