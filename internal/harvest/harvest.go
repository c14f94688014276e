package harvest

import (
	"context"
	"time"

	"vault-harvester/internal/provider"
	"vault-harvester/internal/saver"
)

// Paths are the files and directories the stages hand off through.
type Paths struct {
	VaultList    string // written by ListVaults, read by every later stage
	Details      string
	PortfolioDir string
	TradesDir    string
	Report       string // run report; empty disables it
}

// Harvester runs the four stages against one provider and one output format.
type Harvester struct {
	DP         provider.DataProvider
	Saver      saver.TableSaver
	Paths      Paths
	Location   *time.Location
	HeaderMode HeaderMode
}

func (h *Harvester) loc() *time.Location {
	if h.Location == nil {
		return time.Local
	}
	return h.Location
}

// requestContext detaches a request from shutdown cancellation: once issued,
// a request runs until it answers or hits its own timeout.
func requestContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// stopped reports whether a shutdown was requested between items.
func stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
