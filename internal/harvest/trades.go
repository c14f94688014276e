package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vault-harvester/internal/model"
	"vault-harvester/internal/provider/hyperliquid"
)

// ShortAddress keeps the first and last 8 characters of an address for file names.
func ShortAddress(address string) string {
	head, tail := address, address
	if len(address) > 8 {
		head = address[:8]
		tail = address[len(address)-8:]
	}
	return head + "..." + tail
}

// TradeFileName is the per-vault trade file name for the given extension.
func TradeFileName(address, ext string) string {
	return "vault_" + SanitizeDirName(ShortAddress(address)) + "_trades." + ext
}

// ToTrades converts fills into trade rows, injecting the vault address into each.
func ToTrades(fills []hyperliquid.Fill, vaultAddress string, loc *time.Location) []model.Trade {
	trades := make([]model.Trade, len(fills))
	for i, f := range fills {
		var timeMs, readable string
		if f.Time != nil {
			ms := f.Time.Int64()
			timeMs = strconv.FormatInt(ms, 10)
			readable = formatMillisPrecise(ms, loc)
		}
		trades[i] = model.Trade{
			Coin:          f.Coin.String(),
			Price:         f.Px.String(),
			Size:          f.Sz.String(),
			Side:          f.Side.String(),
			TimeMs:        timeMs,
			ReadableTime:  readable,
			StartPosition: f.StartPosition.String(),
			Direction:     f.Dir.String(),
			ClosedPnl:     f.ClosedPnl.String(),
			Hash:          f.Hash.String(),
			OrderID:       f.Oid.String(),
			Crossed:       f.Crossed.String(),
			Fee:           f.Fee.String(),
			TradeID:       f.Tid.String(),
			FeeToken:      f.FeeToken.String(),
			TwapID:        f.TwapID.String(),
			VaultAddress:  vaultAddress,
			Liquidation:   f.Liquidation.String(),
			ClientOrderID: f.Cloid.String(),
		}
	}
	return trades
}

// FetchTrades requests the fill history of every listed vault and writes one table per vault.
// Vaults with no fills are skipped without a file.
func (h *Harvester) FetchTrades(ctx context.Context) StageReport {
	report := StageReport{Stage: StageTrades}

	refs, err := ReadVaultList(h.Saver, h.Paths.VaultList)
	if err != nil {
		report.Err = err
		logListError(StageTrades, err)
		return report
	}
	if err := os.MkdirAll(h.Paths.TradesDir, 0755); err != nil {
		report.Err = fmt.Errorf("create dir %s: %w", h.Paths.TradesDir, err)
		slog.Error("cannot create output folder", "stage", StageTrades, "error", err)
		return report
	}
	slog.Info("read vault list", "stage", StageTrades, "vaults", len(refs))

	ext := h.Saver.Extension()
	for i, ref := range refs {
		if stopped(ctx) {
			slog.Warn("shutdown requested, stop stage", "stage", StageTrades, "done", i, "total", len(refs))
			break
		}
		fills, err := h.DP.UserFillsByTime(requestContext(ctx), ref.Address)
		if err != nil {
			report.fail(ref.Address, err)
			slog.Warn("fills request failed", "stage", StageTrades, "n", i+1, "total", len(refs), "vault", ref.Address, "error", err)
			continue
		}
		if len(fills) == 0 {
			report.skip(ref.Address, "no trades")
			slog.Info("no trades to save", "stage", StageTrades, "n", i+1, "total", len(refs), "vault", ref.Address)
			continue
		}

		trades := ToTrades(fills, ref.Address, h.loc())
		t := model.Table{Columns: model.TradeColumns, Rows: make([][]string, len(trades))}
		for j, tr := range trades {
			t.Rows[j] = tr.Row()
		}
		path := filepath.Join(h.Paths.TradesDir, TradeFileName(ref.Address, ext))
		if err := h.Saver.Save(t, path); err != nil {
			report.fail(ref.Address, fmt.Errorf("write %s: %w", path, err))
			slog.Warn("failed to write trades", "stage", StageTrades, "vault", ref.Address, "path", path, "error", err)
			continue
		}
		report.ok(ref.Address, 1)
		slog.Info("trades saved", "stage", StageTrades, "n", i+1, "total", len(refs), "vault", ShortAddress(ref.Address), "path", path, "trades", len(trades))
	}
	return report
}
