package model

// TradeColumns is the header of a per-vault trade table.
var TradeColumns = []string{
	"Coin", "Price", "Size", "Side", "Timestamp", "Readable Time",
	"Start Position", "Direction", "Closed PnL", "Hash", "Order ID",
	"Crossed", "Fee", "Trade ID", "Fee Token", "TWAP ID",
	"Vault Address", "Liquidation", "Client Order ID",
}

// Trade is one fill of a vault. Identity is TradeID scoped to VaultAddress.
// Nullable API fields (TwapID, Liquidation, ClientOrderID) are empty when absent.
type Trade struct {
	Coin          string
	Price         string
	Size          string
	Side          string
	TimeMs        string
	ReadableTime  string // "2006-01-02 15:04:05.000"
	StartPosition string
	Direction     string
	ClosedPnl     string
	Hash          string
	OrderID       string
	Crossed       string
	Fee           string
	TradeID       string
	FeeToken      string
	TwapID        string
	VaultAddress  string
	Liquidation   string
	ClientOrderID string
}

func (t Trade) Row() []string {
	return []string{
		t.Coin, t.Price, t.Size, t.Side, t.TimeMs, t.ReadableTime,
		t.StartPosition, t.Direction, t.ClosedPnl, t.Hash, t.OrderID,
		t.Crossed, t.Fee, t.TradeID, t.FeeToken, t.TwapID,
		t.VaultAddress, t.Liquidation, t.ClientOrderID,
	}
}
