package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"vault-harvester/internal/model"
	"vault-harvester/internal/provider/hyperliquid"
)

// pnlPrecision is the number of decimal places kept in each pnl sum.
const pnlPrecision = 6

// ListVaults fetches the vault listing once and writes the vault list table.
// A fetch failure aborts the stage before the file is touched. An entry that
// does not decode is recorded as a failed item and left out of the table.
func (h *Harvester) ListVaults(ctx context.Context) StageReport {
	report := StageReport{Stage: StageVaults}

	entries, err := h.DP.ListVaults(requestContext(ctx))
	if err != nil {
		report.Err = fmt.Errorf("list vaults: %w", err)
		slog.Error("vault listing failed", "stage", StageVaults, "error", err)
		return report
	}
	slog.Info("fetched vaults", "stage", StageVaults, "count", len(entries))

	valid := make([]hyperliquid.VaultEntry, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			report.fail(e.Summary.VaultAddress.String(), e.Err)
			slog.Warn("skip malformed vault entry", "stage", StageVaults, "vault", e.Summary.VaultAddress.String(), "error", e.Err)
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) == 0 && len(entries) > 0 {
		report.Err = fmt.Errorf("list vaults: none of %d entries decoded", len(entries))
		slog.Error("no usable vault entries, keeping previous vault list", "stage", StageVaults, "entries", len(entries))
		return report
	}

	summaries := SummarizeVaults(valid, h.loc())
	table := model.Table{Columns: model.VaultSummaryColumns, Rows: make([][]string, len(summaries))}
	for i, s := range summaries {
		table.Rows[i] = s.Row()
	}

	if err := os.MkdirAll(filepath.Dir(h.Paths.VaultList), 0755); err != nil {
		report.Err = fmt.Errorf("create dir for %s: %w", h.Paths.VaultList, err)
		slog.Error("cannot create output folder", "stage", StageVaults, "error", err)
		return report
	}
	if err := h.Saver.Save(table, h.Paths.VaultList); err != nil {
		report.Err = fmt.Errorf("write %s: %w", h.Paths.VaultList, err)
		slog.Error("failed to write vault list", "stage", StageVaults, "path", h.Paths.VaultList, "error", err)
		return report
	}
	report.wroteTable()
	for _, s := range summaries {
		report.ok(s.VaultAddress, 0)
	}
	slog.Info("vault list saved", "stage", StageVaults, "path", h.Paths.VaultList, "rows", len(summaries))
	return report
}

// SummarizeVaults flattens listing entries into rows, indexing from 1 in listing order.
func SummarizeVaults(entries []hyperliquid.VaultEntry, loc *time.Location) []model.VaultSummary {
	out := make([]model.VaultSummary, len(entries))
	for i, e := range entries {
		out[i] = summarizeVault(i+1, e, loc)
	}
	return out
}

func summarizeVault(index int, e hyperliquid.VaultEntry, loc *time.Location) model.VaultSummary {
	s := e.Summary
	var createdAt string
	if s.CreateTimeMillis != nil {
		createdAt = formatMillis(s.CreateTimeMillis.Int64(), loc)
	}
	sums := sumPnls(e.Pnls)
	return model.VaultSummary{
		Index:            index,
		Name:             s.Name.String(),
		VaultAddress:     s.VaultAddress.String(),
		LeaderAddress:    s.Leader.String(),
		APR:              e.APR.String(),
		TVL:              s.TVL.String(),
		Status:           model.StatusFromClosed(s.IsClosed),
		RelationshipType: s.Relationship.Type.String(),
		CreatedAt:        createdAt,
		DailyPnlSum:      sums["day"],
		WeeklyPnlSum:     sums["week"],
		MonthlyPnlSum:    sums["month"],
		AllTimePnlSum:    sums["allTime"],
	}
}

// sumPnls sums every period's values and rounds to pnlPrecision places.
// A label seen twice keeps its last sum; values that are not numbers are skipped.
// Absent labels read back as the zero decimal.
func sumPnls(series []hyperliquid.PnlSeries) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(series))
	for _, p := range series {
		if p.Label == "" {
			continue
		}
		total := decimal.Zero
		for _, v := range p.Values {
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				slog.Debug("skip non-numeric pnl value", "label", p.Label, "value", v.String())
				continue
			}
			total = total.Add(d)
		}
		sums[p.Label] = total.Round(pnlPrecision)
	}
	return sums
}
