package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"vault-harvester/internal/model"
	"vault-harvester/internal/provider/hyperliquid"
)

var dirNameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeDirName replaces each character that is invalid in a file name on
// common filesystems with '_'.
func SanitizeDirName(name string) string {
	return dirNameReplacer.Replace(name)
}

// vaultDirName prefers the vault name and falls back to its address.
// Names made only of dots would resolve to "." or ".." and are not used.
func vaultDirName(ref model.VaultRef) string {
	if n := SanitizeDirName(strings.TrimSpace(ref.Name)); !dotsOnly(n) {
		return n
	}
	if a := SanitizeDirName(strings.TrimSpace(ref.Address)); !dotsOnly(a) {
		return a
	}
	return "vault_" + strings.Repeat("_", len(ref.Address))
}

func dotsOnly(name string) bool {
	return strings.Trim(name, ".") == ""
}

// vaultDirs hands out one directory per vault within a run. A name already
// taken by an earlier vault gets the short address appended.
type vaultDirs map[string]bool

func (d vaultDirs) claim(ref model.VaultRef) string {
	name := vaultDirName(ref)
	if d[name] {
		name += "_" + SanitizeDirName(ShortAddress(ref.Address))
	}
	for base, n := name, 2; d[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	d[name] = true
	return name
}

// MergePortfolio flattens one granularity into points: account-value history
// first, pnl history second, then a stable sort by timestamp so equal
// timestamps keep account-value before pnl.
func MergePortfolio(s hyperliquid.PortfolioSeries, loc *time.Location) []model.PortfolioPoint {
	points := make([]model.PortfolioPoint, 0, len(s.AccountValueHistory)+len(s.PnlHistory))
	points = appendHistory(points, s.AccountValueHistory, model.KindAccountValue, loc)
	points = appendHistory(points, s.PnlHistory, model.KindPnl, loc)
	sort.SliceStable(points, func(i, j int) bool { return points[i].At < points[j].At })
	return points
}

func appendHistory(points []model.PortfolioPoint, history [][]json.RawMessage, kind model.PointKind, loc *time.Location) []model.PortfolioPoint {
	for _, entry := range history {
		if len(entry) < 2 {
			continue
		}
		p := model.PortfolioPoint{
			Timestamp: hyperliquid.CellText(entry[0]),
			Value:     hyperliquid.CellText(entry[1]),
			Kind:      kind,
		}
		if ms, ok := hyperliquid.ParseMillis(entry[0]); ok {
			p.At = ms
			p.Datetime = formatMillis(ms, loc)
		}
		points = append(points, p)
	}
	return points
}

// ExportPortfolios writes one table per (vault, granularity) under a per-vault directory.
// Vaults without a portfolio are skipped; a failing vault does not stop the others.
func (h *Harvester) ExportPortfolios(ctx context.Context) StageReport {
	report := StageReport{Stage: StagePortfolio}

	refs, err := ReadVaultList(h.Saver, h.Paths.VaultList)
	if err != nil {
		report.Err = err
		logListError(StagePortfolio, err)
		return report
	}
	if err := os.MkdirAll(h.Paths.PortfolioDir, 0755); err != nil {
		report.Err = fmt.Errorf("create dir %s: %w", h.Paths.PortfolioDir, err)
		slog.Error("cannot create output folder", "stage", StagePortfolio, "error", err)
		return report
	}
	slog.Info("read vault list", "stage", StagePortfolio, "vaults", len(refs))

	dirs := vaultDirs{}
	for i, ref := range refs {
		if stopped(ctx) {
			slog.Warn("shutdown requested, stop stage", "stage", StagePortfolio, "done", i, "total", len(refs))
			break
		}
		files, skipped, err := h.exportVaultPortfolio(ctx, ref, dirs.claim(ref))
		switch {
		case err != nil:
			report.fail(ref.Address, err)
			slog.Warn("portfolio export failed", "stage", StagePortfolio, "n", i+1, "total", len(refs), "vault", ref.Address, "error", err)
		case skipped != "":
			report.skip(ref.Address, skipped)
			slog.Info("portfolio skipped", "stage", StagePortfolio, "n", i+1, "total", len(refs), "vault", ref.Address, "reason", skipped)
		default:
			report.ok(ref.Address, files)
			slog.Info("portfolio exported", "stage", StagePortfolio, "n", i+1, "total", len(refs), "vault", ref.Address, "files", files)
		}
	}
	slog.Info("portfolio stage done", "stage", StagePortfolio, "dir", h.Paths.PortfolioDir, "files", report.Files())
	return report
}

func (h *Harvester) exportVaultPortfolio(ctx context.Context, ref model.VaultRef, dirName string) (files int, skipped string, err error) {
	vaultDir := filepath.Join(h.Paths.PortfolioDir, dirName)
	if err := os.MkdirAll(vaultDir, 0755); err != nil {
		return 0, "", fmt.Errorf("create dir %s: %w", vaultDir, err)
	}

	d, err := h.DP.VaultDetails(requestContext(ctx), ref.Address)
	if err != nil {
		return 0, "", err
	}
	raw, ok := d.Get("portfolio")
	if !ok {
		return 0, "no portfolio data", nil
	}
	series, err := hyperliquid.DecodePortfolio(raw)
	if err != nil {
		return 0, "", err
	}

	ext := h.Saver.Extension()
	for _, s := range series {
		points := MergePortfolio(s, h.loc())
		if len(points) == 0 {
			continue
		}
		t := model.Table{Columns: model.PortfolioColumns, Rows: make([][]string, len(points))}
		for i, p := range points {
			t.Rows[i] = p.Row()
		}
		path := filepath.Join(vaultDir, SanitizeDirName(s.Granularity)+"_portfolio."+ext)
		if err := h.Saver.Save(t, path); err != nil {
			return files, "", fmt.Errorf("write %s: %w", path, err)
		}
		files++
		slog.Debug("saved portfolio", "vault", ref.Address, "granularity", s.Granularity, "path", path, "points", len(points))
	}
	return files, "", nil
}
