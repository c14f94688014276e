package model

// PointKind tags which history a portfolio point came from.
type PointKind string

const (
	KindAccountValue PointKind = "account_value"
	KindPnl          PointKind = "pnl"
)

// PortfolioColumns is the header of a per-granularity portfolio table.
var PortfolioColumns = []string{"timestamp", "datetime", "value", "type"}

// PortfolioPoint is one (timestamp, value) sample of a vault's history.
type PortfolioPoint struct {
	Timestamp string // raw epoch ms as sent by the API
	At        int64  // parsed epoch ms, 0 when Timestamp is not numeric
	Datetime  string // local time, empty on conversion failure
	Value     string
	Kind      PointKind
}

func (p PortfolioPoint) Row() []string {
	return []string{p.Timestamp, p.Datetime, p.Value, string(p.Kind)}
}
