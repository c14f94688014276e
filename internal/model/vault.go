package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// VaultStatus is derived from the API's isClosed flag.
type VaultStatus string

const (
	VaultOpen   VaultStatus = "Open"
	VaultClosed VaultStatus = "Closed"
)

// StatusFromClosed maps isClosed to a VaultStatus.
func StatusFromClosed(closed bool) VaultStatus {
	if closed {
		return VaultClosed
	}
	return VaultOpen
}

// Vault list column names. ColVaultAddress and ColVaultName are read back by later stages.
const (
	ColIndex            = "Index"
	ColVaultName        = "Name"
	ColVaultAddress     = "Vault Address"
	ColLeaderAddress    = "Leader Address"
	ColAPR              = "APR"
	ColTVL              = "TVL"
	ColStatus           = "Status"
	ColRelationshipType = "Relationship Type"
	ColCreatedAt        = "Created At"
	ColDailyPnlSum      = "Daily PnL Sum"
	ColWeeklyPnlSum     = "Weekly PnL Sum"
	ColMonthlyPnlSum    = "Monthly PnL Sum"
	ColAllTimePnlSum    = "All-Time PnL Sum"
)

// VaultSummaryColumns is the header of the vault list table.
var VaultSummaryColumns = []string{
	ColIndex, ColVaultName, ColVaultAddress, ColLeaderAddress,
	ColAPR, ColTVL, ColStatus, ColRelationshipType, ColCreatedAt,
	ColDailyPnlSum, ColWeeklyPnlSum, ColMonthlyPnlSum, ColAllTimePnlSum,
}

// VaultSummary is one row of the vault list. Identity is VaultAddress.
type VaultSummary struct {
	Index            int
	Name             string
	VaultAddress     string
	LeaderAddress    string
	APR              string // raw API text
	TVL              string // raw API text
	Status           VaultStatus
	RelationshipType string
	CreatedAt        string // local "2006-01-02 15:04:05", empty when unknown
	DailyPnlSum      decimal.Decimal
	WeeklyPnlSum     decimal.Decimal
	MonthlyPnlSum    decimal.Decimal
	AllTimePnlSum    decimal.Decimal
}

// Row renders the summary in VaultSummaryColumns order.
func (v VaultSummary) Row() []string {
	return []string{
		strconv.Itoa(v.Index),
		v.Name,
		v.VaultAddress,
		v.LeaderAddress,
		v.APR,
		v.TVL,
		string(v.Status),
		v.RelationshipType,
		v.CreatedAt,
		v.DailyPnlSum.String(),
		v.WeeklyPnlSum.String(),
		v.MonthlyPnlSum.String(),
		v.AllTimePnlSum.String(),
	}
}

// VaultRef is what downstream stages read back from the vault list.
type VaultRef struct {
	Address string
	Name    string
}
