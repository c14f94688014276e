package harvest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-harvester/internal/provider/hyperliquid"
)

func TestRun_AllStagesAndReport(t *testing.T) {
	dp := &fakeProvider{
		vaults: decodeVaults(t, twoVaults),
		details: map[string]string{
			addrA: `{"name":"A","portfolio":[["day",{"pnlHistory":[[1,"1"]]}]]}`,
		},
		fills: map[string]string{addrA: `[{"coin":"BTC","time":1}]`, addrB: `[]`},
	}
	h := newTestHarvester(t, dp)
	h.Paths.Report = filepath.Join(filepath.Dir(h.Paths.VaultList), ".lastrun.json")

	reports := h.Run(context.Background())
	require.Len(t, reports, 4)
	assert.Equal(t, []string{StageVaults, StageDetails, StagePortfolio, StageTrades},
		[]string{reports[0].Stage, reports[1].Stage, reports[2].Stage, reports[3].Stage})
	for _, r := range reports {
		assert.NoError(t, r.Err, r.Stage)
	}

	data, err := os.ReadFile(h.Paths.Report)
	require.NoError(t, err)
	var rr runReport
	require.NoError(t, json.Unmarshal(data, &rr))
	assert.NotEmpty(t, rr.RunID)
	require.Len(t, rr.Stages, 4)
	assert.Equal(t, 1, rr.Stages[0].Files, "vault list")
	assert.Equal(t, 1, rr.Stages[1].Files, "details table")
	assert.Equal(t, 1, rr.Stages[2].Files, "portfolio of the first vault")
	assert.Equal(t, 1, rr.Stages[3].Files, "trades of the first vault")
	assert.Equal(t, []string{addrA}, rr.Stages[1].Succeeded)
	require.Len(t, rr.Stages[1].Failed, 1)
	assert.Equal(t, addrB, rr.Stages[1].Failed[0].Vault)
}

func TestRun_ListFailureStillRunsLaterStages(t *testing.T) {
	dp := &fakeProvider{vaultsErr: &hyperliquid.StatusError{Code: 500}}
	h := newTestHarvester(t, dp)

	reports := h.Run(context.Background())
	require.Len(t, reports, 4)
	assert.Error(t, reports[0].Err)
	for _, r := range reports[1:] {
		assert.ErrorIs(t, r.Err, ErrVaultListMissing)
	}
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	dp := &fakeProvider{vaults: decodeVaults(t, twoVaults)}
	h := newTestHarvester(t, dp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := h.Run(ctx)
	assert.Empty(t, reports)
	assert.Empty(t, dp.detailCalls)
}
