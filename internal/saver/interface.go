package saver

import (
	"strings"

	"vault-harvester/internal/model"
)

// TableSaver persists one table per file and reads it back.
// Stages only depend on this interface; main picks the format.
type TableSaver interface {
	Save(t model.Table, path string) error
	Load(path string) (model.Table, error)
	Extension() string
}

// NewTableSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewTableSaver(format string) TableSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
