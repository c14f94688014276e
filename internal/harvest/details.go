package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vault-harvester/internal/model"
	"vault-harvester/internal/provider/hyperliquid"
)

// HeaderMode selects how the combined detail table picks its columns.
type HeaderMode string

const (
	// HeaderUnion uses every key seen in any row, in first-seen order.
	HeaderUnion HeaderMode = "union"
	// HeaderFirstRow uses the first row's keys only; later rows lose extra
	// keys and leave missing ones empty. Kept for output compatibility with
	// older exports.
	HeaderFirstRow HeaderMode = "first-row"
)

// ParseHeaderMode maps a config string to a HeaderMode. Empty means union.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch HeaderMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", HeaderUnion:
		return HeaderUnion, nil
	case HeaderFirstRow:
		return HeaderFirstRow, nil
	default:
		return "", fmt.Errorf("unknown detail header mode %q (use: union, first-row)", s)
	}
}

// excludedDetailKeys are dropped from detail rows; the portfolio is exported separately.
var excludedDetailKeys = map[string]bool{
	"portfolio": true,
	"followers": true,
}

// detailColumnNames renames API keys to column titles. Unknown keys pass through verbatim.
var detailColumnNames = map[string]string{
	"vaultAddress":          "Vault Address",
	"name":                  "Vault Name",
	"manager":               "Manager Address",
	"creationTime":          "Creation Time",
	"assets":                "Total Assets",
	"pnl":                   "Cumulative PnL",
	"roi":                   "ROI",
	"aum":                   "AUM",
	"fees":                  "Fees",
	"isPublic":              "Is Public",
	"description":           "Description",
	"performance":           "Performance",
	"depositToken":          "Deposit Token",
	"minDeposit":            "Min Deposit",
	"maxDeposit":            "Max Deposit",
	"leader":                "Leader Address",
	"apr":                   "APR",
	"followerState":         "Follower State",
	"leaderFraction":        "Leader Fraction",
	"leaderCommission":      "Leader Commission",
	"maxDistributable":      "Max Distributable",
	"maxWithdrawable":       "Max Withdrawable",
	"isClosed":              "Is Closed",
	"relationship":          "Relationship",
	"allowDeposits":         "Allow Deposits",
	"alwaysCloseOnWithdraw": "Always Close On Withdraw",
}

// DetailColumn returns the column title for an API key.
func DetailColumn(key string) string {
	if name, ok := detailColumnNames[key]; ok {
		return name
	}
	return key
}

// detailCell is one renamed (column, value) pair of a detail row.
type detailCell struct {
	Column string
	Value  string
}

// detailRow filters and renames the fields of one detail response, keeping response order.
func detailRow(d *hyperliquid.VaultDetails) []detailCell {
	row := make([]detailCell, 0, len(d.Fields))
	for _, f := range d.Fields {
		if excludedDetailKeys[f.Key] {
			continue
		}
		row = append(row, detailCell{Column: DetailColumn(f.Key), Value: hyperliquid.CellText(f.Value)})
	}
	return row
}

// detailTable lays out the collected rows under the header chosen by mode.
func detailTable(rows [][]detailCell, mode HeaderMode) model.Table {
	var columns []string
	seen := make(map[string]bool)
	for i, row := range rows {
		if mode == HeaderFirstRow && i > 0 {
			break
		}
		for _, c := range row {
			if !seen[c.Column] {
				seen[c.Column] = true
				columns = append(columns, c.Column)
			}
		}
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	t := model.Table{Columns: columns, Rows: make([][]string, len(rows))}
	for r, row := range rows {
		cells := make([]string, len(columns))
		for _, c := range row {
			if i, ok := index[c.Column]; ok {
				cells[i] = c.Value
			}
		}
		t.Rows[r] = cells
	}
	return t
}

// FetchDetails requests vaultDetails for every listed vault and writes one combined table.
// A failed vault is recorded and skipped; nothing is written when no vault succeeded.
func (h *Harvester) FetchDetails(ctx context.Context) StageReport {
	report := StageReport{Stage: StageDetails}

	refs, err := ReadVaultList(h.Saver, h.Paths.VaultList)
	if err != nil {
		report.Err = err
		logListError(StageDetails, err)
		return report
	}
	slog.Info("read vault list", "stage", StageDetails, "vaults", len(refs))

	var rows [][]detailCell
	for i, ref := range refs {
		if stopped(ctx) {
			slog.Warn("shutdown requested, stop stage", "stage", StageDetails, "done", i, "total", len(refs))
			break
		}
		d, err := h.DP.VaultDetails(requestContext(ctx), ref.Address)
		if err != nil {
			report.fail(ref.Address, err)
			slog.Warn("vault details failed", "stage", StageDetails, "n", i+1, "total", len(refs), "vault", ref.Address, "error", err)
			continue
		}
		rows = append(rows, detailRow(d))
		report.ok(ref.Address, 0)
		slog.Info("vault details ok", "stage", StageDetails, "n", i+1, "total", len(refs), "vault", ref.Address)
	}

	if len(rows) == 0 {
		report.Err = ErrNoRows
		slog.Error("no vault details collected, nothing written", "stage", StageDetails)
		return report
	}

	if err := os.MkdirAll(filepath.Dir(h.Paths.Details), 0755); err != nil {
		report.Err = fmt.Errorf("create dir for %s: %w", h.Paths.Details, err)
		return report
	}
	table := detailTable(rows, h.HeaderMode)
	if err := h.Saver.Save(table, h.Paths.Details); err != nil {
		report.Err = fmt.Errorf("write %s: %w", h.Paths.Details, err)
		slog.Error("failed to write vault details", "stage", StageDetails, "path", h.Paths.Details, "error", err)
		return report
	}
	report.wroteTable()
	slog.Info("vault details saved", "stage", StageDetails, "path", h.Paths.Details, "rows", len(rows), "columns", len(table.Columns))
	return report
}

func logListError(stage string, err error) {
	if errors.Is(err, ErrVaultListMissing) {
		slog.Error("vault list not found, run the vault lister first", "stage", stage, "error", err)
		return
	}
	slog.Error("cannot read vault list", "stage", stage, "error", err)
}
