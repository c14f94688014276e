package saver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-harvester/internal/model"
)

func sampleTable() model.Table {
	return model.Table{
		Columns: []string{"name", "address", "note"},
		Rows: [][]string{
			{"Alpha", "0x1", `has "quotes", commas`},
			{"Beta", "0x2", ""},
		},
	}
}

func TestNewTableSaver(t *testing.T) {
	assert.IsType(t, CSVSaver{}, NewTableSaver("csv"))
	assert.IsType(t, ParquetSaver{}, NewTableSaver(" Parquet "))
	assert.IsType(t, JSONSaver{}, NewTableSaver("JSON"))
	assert.Nil(t, NewTableSaver("xlsx"))
}

func TestCSVSaver_WritesBOMAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	s := CSVSaver{}
	require.NoError(t, s.Save(sampleTable(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	assert.Contains(t, string(raw), "name,address,note\n")

	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTable(), got)
}

func TestCSVSaver_LoadWithoutBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3\n"), 0644))

	got, err := CSVSaver{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3"}}, got.Rows)
}

func TestCSVSaver_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	s := CSVSaver{}
	require.NoError(t, s.Save(sampleTable(), path))

	small := model.Table{Columns: []string{"x"}, Rows: [][]string{{"1"}}}
	require.NoError(t, s.Save(small, path))

	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, small, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCSVSaver_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	require.NoError(t, CSVSaver{}.Save(sampleTable(), a))
	require.NoError(t, CSVSaver{}.Save(sampleTable(), b))

	ra, _ := os.ReadFile(a)
	rb, _ := os.ReadFile(b)
	assert.Equal(t, ra, rb)
}

func TestSave_MissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "t.csv")
	assert.Error(t, CSVSaver{}.Save(sampleTable(), path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestJSONSaver_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	s := JSONSaver{}
	require.NoError(t, s.Save(sampleTable(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(raw), `"name"`), strings.Index(string(raw), `"address"`), "keys keep column order")

	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "name", "note"}, got.Columns)
	assert.Equal(t, [][]string{
		{"0x1", "Alpha", `has "quotes", commas`},
		{"0x2", "Beta", ""},
	}, got.Rows)
}

func TestJSONSaver_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	require.NoError(t, JSONSaver{}.Save(model.Table{Columns: []string{"a"}}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestParquetSaver_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.parquet")
	s := ParquetSaver{}
	require.NoError(t, s.Save(sampleTable(), path))

	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "name", "note"}, got.Columns)
	require.Len(t, got.Rows, 2)

	addr := got.ColumnIndex("address")
	name := got.ColumnIndex("name")
	note := got.ColumnIndex("note")
	assert.Equal(t, "0x1", got.Rows[0][addr])
	assert.Equal(t, "Alpha", got.Rows[0][name])
	assert.Equal(t, `has "quotes", commas`, got.Rows[0][note])
	assert.Equal(t, "Beta", got.Rows[1][name])
	assert.Equal(t, "", got.Rows[1][note])
}
