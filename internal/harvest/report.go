package harvest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type runReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []stageRecord `json:"stages"`
}

type stageRecord struct {
	Stage     string        `json:"stage"`
	Error     string        `json:"error,omitempty"`
	Files     int           `json:"files"`
	Succeeded []string      `json:"succeeded"`
	Skipped   []skipEntry   `json:"skipped,omitempty"`
	Failed    []failedEntry `json:"failed,omitempty"`
}

type skipEntry struct {
	Vault  string `json:"vault"`
	Reason string `json:"reason"`
}

type failedEntry struct {
	Vault  string `json:"vault"`
	Reason string `json:"reason"`
}

func writeRunReport(path string, started, finished time.Time, reports []StageReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	rr := runReport{
		RunID:      uuid.NewString(),
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Stages:     make([]stageRecord, 0, len(reports)),
	}
	for _, r := range reports {
		rec := stageRecord{Stage: r.Stage, Files: r.Files(), Succeeded: []string{}}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		for _, it := range r.Items {
			switch {
			case it.Err != nil:
				rec.Failed = append(rec.Failed, failedEntry{Vault: it.Address, Reason: it.Err.Error()})
			case it.Skipped != "":
				rec.Skipped = append(rec.Skipped, skipEntry{Vault: it.Address, Reason: it.Skipped})
			default:
				rec.Succeeded = append(rec.Succeeded, it.Address)
			}
		}
		rr.Stages = append(rr.Stages, rec)
	}
	data, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
