package saver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"vault-harvester/internal/model"
)

// JSONSaver writes a table as an indented array of objects, keys in column order.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(t model.Table, path string) error {
	return writeAtomic(path, func(out io.Writer) error {
		w := bufio.NewWriter(out)
		keys := make([][]byte, len(t.Columns))
		for i, c := range t.Columns {
			k, err := json.Marshal(c)
			if err != nil {
				return err
			}
			keys[i] = k
		}
		w.WriteString("[")
		for r, row := range t.Rows {
			if r > 0 {
				w.WriteString(",")
			}
			w.WriteString("\n  {")
			for i := range t.Columns {
				if i > 0 {
					w.WriteString(",")
				}
				var cell string
				if i < len(row) {
					cell = row[i]
				}
				v, err := json.Marshal(cell)
				if err != nil {
					return err
				}
				w.WriteString("\n    ")
				w.Write(keys[i])
				w.WriteString(": ")
				w.Write(v)
			}
			w.WriteString("\n  }")
		}
		if len(t.Rows) > 0 {
			w.WriteString("\n")
		}
		w.WriteString("]\n")
		return w.Flush()
	})
}

// Load reads an array of flat objects. Column order is not stored in JSON,
// so columns come back sorted by name.
func (JSONSaver) Load(path string) (model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Table{}, err
	}
	var objs []map[string]string
	if err := json.Unmarshal(data, &objs); err != nil {
		return model.Table{}, fmt.Errorf("parse JSON %s: %w", path, err)
	}
	seen := make(map[string]bool)
	var cols []string
	for _, o := range objs {
		for k := range o {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	t := model.Table{Columns: cols, Rows: make([][]string, len(objs))}
	for i, o := range objs {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = o[c]
		}
		t.Rows[i] = row
	}
	return t, nil
}
