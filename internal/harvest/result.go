package harvest

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names used in logs and the run report.
const (
	StageVaults    = "vaults"
	StageDetails   = "details"
	StagePortfolio = "portfolio"
	StageTrades    = "trades"
)

// ErrVaultListMissing is returned by downstream stages when the vault list file does not exist.
var ErrVaultListMissing = errors.New("vault list file not found")

// ErrNoRows is returned by the detail stage when no vault produced a row.
var ErrNoRows = errors.New("no rows collected")

// ItemResult is the outcome of one vault within a stage.
type ItemResult struct {
	Address string
	Files   int    // files written for this vault
	Skipped string // why nothing was written although the call succeeded
	Err     error
}

// Ok reports whether the item did not fail.
func (r ItemResult) Ok() bool { return r.Err == nil }

// StageReport collects a stage's per-item results. Err is set only when the
// stage as a whole aborted (missing input, list fetch failure, write failure).
type StageReport struct {
	Stage string
	Err   error
	Items []ItemResult

	tables int // combined tables written by the stage itself, outside any item
}

func (s *StageReport) ok(address string, files int) {
	s.Items = append(s.Items, ItemResult{Address: address, Files: files})
}

func (s *StageReport) skip(address, reason string) {
	s.Items = append(s.Items, ItemResult{Address: address, Skipped: reason})
}

func (s *StageReport) fail(address string, err error) {
	s.Items = append(s.Items, ItemResult{Address: address, Err: err})
}

// Succeeded returns the items that did not fail.
func (s StageReport) Succeeded() []ItemResult {
	var out []ItemResult
	for _, it := range s.Items {
		if it.Ok() {
			out = append(out, it)
		}
	}
	return out
}

// Failed returns the items that failed.
func (s StageReport) Failed() []ItemResult {
	var out []ItemResult
	for _, it := range s.Items {
		if !it.Ok() {
			out = append(out, it)
		}
	}
	return out
}

// wroteTable records a file that belongs to the whole stage rather than one vault.
func (s *StageReport) wroteTable() {
	s.tables++
}

// Files returns the number of files written by the stage.
func (s StageReport) Files() int {
	n := s.tables
	for _, it := range s.Items {
		n += it.Files
	}
	return n
}

func joinFailedReasons(failed []ItemResult) string {
	if len(failed) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failed {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Address)
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
		if i >= 4 && len(failed) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failed)-5))
			break
		}
	}
	return b.String()
}
