package harvest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-harvester/internal/model"
	"vault-harvester/internal/provider/hyperliquid"
)

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xaaaa00...00001111", ShortAddress(addrA))
	assert.Equal(t, "0x12...0x12", ShortAddress("0x12"))
	assert.Equal(t, "vault_0xaaaa00...00001111_trades.csv", TradeFileName(addrA, "csv"))
}

func TestFormatMillisPrecise(t *testing.T) {
	assert.Equal(t, "2023-11-14 22:13:20.007", formatMillisPrecise(1700000000007, time.UTC))
	assert.Equal(t, "2023-11-14 22:13:20.999", formatMillisPrecise(1700000000999, time.UTC))
	assert.Equal(t, "1970-01-01 00:00:00.000", formatMillisPrecise(0, time.UTC))
}

func TestToTrades(t *testing.T) {
	var fills []hyperliquid.Fill
	require.NoError(t, jsonUnmarshal(`[
		{"coin":"BTC","px":"65000.5","sz":"0.01","side":"B","time":1700000000123,"startPosition":"0.0","dir":"Open Long",
		 "closedPnl":"0.0","hash":"0xhash","oid":123,"crossed":true,"fee":"0.1","tid":456,"feeToken":"USDC","twapId":null,
		 "liquidation":{"method":"market"}},
		{"coin":"ETH"}
	]`, &fills))

	trades := ToTrades(fills, addrA, time.UTC)
	require.Len(t, trades, 2)

	tr := trades[0]
	assert.Equal(t, "BTC", tr.Coin)
	assert.Equal(t, "65000.5", tr.Price)
	assert.Equal(t, "1700000000123", tr.TimeMs)
	assert.Equal(t, "2023-11-14 22:13:20.123", tr.ReadableTime)
	assert.Equal(t, "123", tr.OrderID)
	assert.Equal(t, "true", tr.Crossed)
	assert.Equal(t, "456", tr.TradeID)
	assert.Equal(t, "", tr.TwapID)
	assert.Equal(t, `{"method":"market"}`, tr.Liquidation)
	assert.Equal(t, "", tr.ClientOrderID)
	assert.Equal(t, addrA, tr.VaultAddress)

	assert.Equal(t, "ETH", trades[1].Coin)
	assert.Equal(t, "", trades[1].ReadableTime)
	assert.Equal(t, addrA, trades[1].VaultAddress)
	assert.Len(t, trades[1].Row(), len(model.TradeColumns))
}

func TestFetchTrades(t *testing.T) {
	dp := &fakeProvider{fills: map[string]string{
		addrA: `[{"coin":"BTC","time":1700000000001,"tid":1},{"coin":"ETH","time":1700000000002,"tid":2}]`,
		addrB: `[]`,
	}}
	h := newTestHarvester(t, dp)
	writeVaultList(t, h, dp)

	r := h.FetchTrades(context.Background())
	require.NoError(t, r.Err)
	assert.Equal(t, []string{addrA, addrB}, dp.fillCalls)
	assert.Equal(t, 1, r.Files())
	assert.Equal(t, "no trades", r.Items[1].Skipped)

	tbl, err := h.Saver.Load(filepath.Join(h.Paths.TradesDir, TradeFileName(addrA, "csv")))
	require.NoError(t, err)
	assert.Equal(t, model.TradeColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	vaultCol := tbl.ColumnIndex("Vault Address")
	for _, row := range tbl.Rows {
		assert.Equal(t, addrA, row[vaultCol])
	}

	_, err = os.Stat(filepath.Join(h.Paths.TradesDir, TradeFileName(addrB, "csv")))
	assert.True(t, os.IsNotExist(err))
}

func TestFetchTrades_FailureSkipsVault(t *testing.T) {
	dp := &fakeProvider{
		fills:    map[string]string{addrB: `[{"coin":"SOL","time":5}]`},
		fillErrs: map[string]error{addrA: &hyperliquid.StatusError{Code: 429, Body: "rate limited"}},
	}
	h := newTestHarvester(t, dp)
	writeVaultList(t, h, dp)

	r := h.FetchTrades(context.Background())
	require.NoError(t, r.Err)
	require.Len(t, r.Failed(), 1)
	var se *hyperliquid.StatusError
	assert.True(t, errors.As(r.Failed()[0].Err, &se))
	assert.Equal(t, 429, se.Code)

	entries, err := os.ReadDir(h.Paths.TradesDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, TradeFileName(addrB, "csv"), entries[0].Name())
}

func TestFetchTrades_MissingVaultList(t *testing.T) {
	dp := &fakeProvider{}
	h := newTestHarvester(t, dp)

	r := h.FetchTrades(context.Background())
	assert.ErrorIs(t, r.Err, ErrVaultListMissing)
	assert.Empty(t, dp.fillCalls)
	_, err := os.Stat(h.Paths.TradesDir)
	assert.True(t, os.IsNotExist(err))
}
