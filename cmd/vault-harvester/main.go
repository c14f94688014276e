package main

import (
	"log/slog"
	"os"

	"vault-harvester/internal/app"
	"vault-harvester/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	a, cleanup, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	cfg := a.Config
	slog.SetDefault(slogx.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	slog.Info("using data provider", "provider", a.DP.GetName())
	slog.Info("save dir", "dir", cfg.DataDir, "format", cfg.SaveFormat, "timezone", cfg.Timezone)

	err = app.RunFlow(cfg, a.Harvester)
	cleanup()
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
