package harvest

import (
	"context"
	"log/slog"
	"time"
)

// Run executes the four stages strictly in order. Every stage traps its own
// failures, so a failed stage never prevents the next one from running.
func (h *Harvester) Run(ctx context.Context) []StageReport {
	started := time.Now()
	stages := []func(context.Context) StageReport{
		h.ListVaults,
		h.FetchDetails,
		h.ExportPortfolios,
		h.FetchTrades,
	}

	reports := make([]StageReport, 0, len(stages))
	for _, stage := range stages {
		if stopped(ctx) {
			slog.Warn("shutdown requested, skip remaining stages", "completed", len(reports))
			break
		}
		r := stage(ctx)
		logStageSummary(r)
		reports = append(reports, r)
	}

	if h.Paths.Report != "" {
		if err := writeRunReport(h.Paths.Report, started, time.Now(), reports); err != nil {
			slog.Warn("could not write run report", "error", err)
		} else {
			slog.Info("run report saved", "path", h.Paths.Report)
		}
	}
	return reports
}

func logStageSummary(r StageReport) {
	failed := r.Failed()
	attrs := []any{
		"stage", r.Stage,
		"success", len(r.Succeeded()),
		"failed", len(failed),
		"files", r.Files(),
	}
	if r.Err != nil {
		attrs = append(attrs, "error", r.Err)
	}
	if len(failed) > 0 {
		attrs = append(attrs, "reasons", joinFailedReasons(failed))
	}
	if r.Err != nil {
		slog.Error("stage aborted", attrs...)
		return
	}
	slog.Info("stage done", attrs...)
}
