package saver

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"vault-harvester/internal/model"
)

// CSVSaver writes UTF-8 CSV with a leading BOM so spreadsheet tools pick the right encoding.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(t model.Table, path string) error {
	return writeAtomic(path, func(out io.Writer) error {
		enc := transform.NewWriter(out, unicode.UTF8BOM.NewEncoder())
		w := csv.NewWriter(enc)
		if err := w.Write(t.Columns); err != nil {
			return err
		}
		for _, row := range t.Rows {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		return enc.Close()
	})
}

// Load reads a CSV table; a leading BOM is stripped when present.
func (CSVSaver) Load(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return model.Table{}, fmt.Errorf("parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return model.Table{}, nil
	}
	return model.Table{Columns: records[0], Rows: records[1:]}, nil
}
