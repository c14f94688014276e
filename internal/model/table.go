package model

// Table is a header row plus string cells. Every saver format reads and writes it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of column col in row r. Short rows and unknown columns yield "".
func (t Table) Cell(r, col int) string {
	if r < 0 || r >= len(t.Rows) || col < 0 || col >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][col]
}
