package saver

import (
	"errors"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"vault-harvester/internal/model"
)

// ParquetSaver stores a table as a flat parquet file with one string column per table column.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(t model.Table, path string) error {
	group := parquet.Group{}
	for _, c := range t.Columns {
		group[c] = parquet.String()
	}
	schema := parquet.NewSchema("table", group)

	// parquet orders group fields by name; map table columns onto leaf indexes.
	fields := schema.Fields()
	leaf := make(map[string]int, len(fields))
	for i, f := range fields {
		leaf[f.Name()] = i
	}

	rows := make([]parquet.Row, len(t.Rows))
	for r, cells := range t.Rows {
		row := make(parquet.Row, len(fields))
		for i, c := range t.Columns {
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			idx := leaf[c]
			row[idx] = parquet.ByteArrayValue([]byte(v)).Level(0, 0, idx)
		}
		rows[r] = row
	}

	return writeAtomic(path, func(out io.Writer) error {
		w := parquet.NewWriter(out, schema)
		if _, err := w.WriteRows(rows); err != nil {
			return err
		}
		return w.Close()
	})
}

// Load reads back a file written by Save. Columns come back in schema (name) order.
func (ParquetSaver) Load(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, err
	}
	defer f.Close()

	r := parquet.NewReader(f)
	defer r.Close()

	fields := r.Schema().Fields()
	t := model.Table{Columns: make([]string, len(fields))}
	for i, fld := range fields {
		t.Columns[i] = fld.Name()
	}

	buf := make([]parquet.Row, 64)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]string, len(fields))
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(cells) && !v.IsNull() {
					cells[c] = string(v.ByteArray())
				}
			}
			t.Rows = append(t.Rows, cells)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, err
		}
	}
	return t, nil
}
