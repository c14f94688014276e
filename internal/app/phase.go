package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"vault-harvester/internal/harvest"
)

// Runner is the part of the harvester RunFlow drives.
type Runner interface {
	Run(ctx context.Context) []harvest.StageReport
}

// RunFlow runs the pipeline once, then, when a schedule is configured,
// again on every schedule tick until SIGINT/SIGTERM. Ticks that fire while a
// run is still going are skipped, so runs never overlap.
func RunFlow(cfg *Config, h Runner) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runFlow(ctx, cfg, h)
}

func runFlow(ctx context.Context, cfg *Config, h Runner) error {
	h.Run(ctx)
	if cfg.RunSchedule == "" {
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	id, err := c.AddFunc(cfg.RunSchedule, func() {
		slog.Info("scheduled run start", "schedule", cfg.RunSchedule)
		h.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("register schedule %q: %w", cfg.RunSchedule, err)
	}
	c.Start()
	slog.Info("waiting for next run", "schedule", cfg.RunSchedule, "next_run", c.Entry(id).Next.Format("2006-01-02 15:04"))

	<-ctx.Done()
	slog.Info("received signal, stopping scheduler")
	<-c.Stop().Done()
	return nil
}
