package main

import (
	"vault-harvester/internal/app"
	"vault-harvester/internal/harvest"
	"vault-harvester/internal/provider"
)

// App holds application dependencies built by Wire.
type App struct {
	Config    *app.Config
	DP        provider.DataProvider
	Harvester *harvest.Harvester
}
