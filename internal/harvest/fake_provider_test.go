package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vault-harvester/internal/provider/hyperliquid"
	"vault-harvester/internal/saver"
)

// fakeProvider serves canned responses and records every address it was asked about.
type fakeProvider struct {
	vaults     []hyperliquid.VaultEntry
	vaultsErr  error
	details    map[string]string // raw JSON per address
	detailErrs map[string]error
	fills      map[string]string // raw JSON per address
	fillErrs   map[string]error

	detailCalls []string
	fillCalls   []string
}

func (f *fakeProvider) GetName() string { return "fake" }
func (f *fakeProvider) Close() error    { return nil }

func (f *fakeProvider) ListVaults(ctx context.Context) ([]hyperliquid.VaultEntry, error) {
	return f.vaults, f.vaultsErr
}

func (f *fakeProvider) VaultDetails(ctx context.Context, addr string) (*hyperliquid.VaultDetails, error) {
	f.detailCalls = append(f.detailCalls, addr)
	if err := f.detailErrs[addr]; err != nil {
		return nil, err
	}
	raw, ok := f.details[addr]
	if !ok {
		return nil, &hyperliquid.StatusError{Code: 500, Body: "unknown vault"}
	}
	var d hyperliquid.VaultDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (f *fakeProvider) UserFillsByTime(ctx context.Context, user string) ([]hyperliquid.Fill, error) {
	f.fillCalls = append(f.fillCalls, user)
	if err := f.fillErrs[user]; err != nil {
		return nil, err
	}
	raw, ok := f.fills[user]
	if !ok {
		return nil, errors.New("connection refused")
	}
	var fills []hyperliquid.Fill
	if err := json.Unmarshal([]byte(raw), &fills); err != nil {
		return nil, err
	}
	return fills, nil
}

func decodeVaults(t *testing.T, raw string) []hyperliquid.VaultEntry {
	t.Helper()
	var v []hyperliquid.VaultEntry
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode vaults: %v", err)
	}
	return v
}

func newTestHarvester(t *testing.T, dp *fakeProvider) *Harvester {
	t.Helper()
	dir := t.TempDir()
	return &Harvester{
		DP:    dp,
		Saver: saver.CSVSaver{},
		Paths: Paths{
			VaultList:    dir + "/hyperliquid_vaults.csv",
			Details:      dir + "/vault_details.csv",
			PortfolioDir: dir + "/vault_portfolios",
			TradesDir:    dir + "/vault_trades",
		},
		Location:   time.UTC,
		HeaderMode: HeaderUnion,
	}
}

const twoVaults = `[
  {"summary": {"name": "Alpha: Fund/1", "vaultAddress": "0xaaaa000000000000000000000000000000001111", "leader": "0xlead1",
               "tvl": "1000.5", "isClosed": false, "relationship": {"type": "normal"}, "createTimeMillis": 1700000000000},
   "apr": 0.25,
   "pnls": [["day", ["1.1", "2.2"]], ["week", ["1"]], ["month", []], ["allTime", ["0.1234567", "0.0000001"]], ["other", ["9"]]]},
  {"summary": {"name": "", "vaultAddress": "0xbbbb000000000000000000000000000000002222", "leader": "0xlead2",
               "tvl": "0", "isClosed": true, "relationship": {"type": "child"}, "createTimeMillis": 1600000000000},
   "apr": -0.1,
   "pnls": []}
]`

// writeVaultList runs the lister against twoVaults so downstream stages have input.
func writeVaultList(t *testing.T, h *Harvester, dp *fakeProvider) {
	t.Helper()
	dp.vaults = decodeVaults(t, twoVaults)
	r := h.ListVaults(context.Background())
	if r.Err != nil {
		t.Fatalf("ListVaults: %v", r.Err)
	}
}
