package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvsalt/tabular"
)

func TestWriteCSV(t *testing.T) {
	cols := []tabular.Column{
		{Key: "VM", Title: "VM"},
		{Key: "CPUs", Title: "vCPU"},
		{Key: "Notes"},
	}
	rows := []tabular.Record{
		{"VM": "web01", "CPUs": 4.0, "Notes": "has, comma"},
		{"VM": "db01", "CPUs": 8.0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cols, rows))

	want := "VM,vCPU,Notes\n" +
		"web01,4,\"has, comma\"\n" +
		"db01,8,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmptyRows(t *testing.T) {
	cols := []tabular.Column{{Key: "VM", Title: "VM"}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cols, nil))
	assert.Equal(t, "VM\n", buf.String())
}

func TestColumnsFromRows(t *testing.T) {
	rows := []tabular.Record{
		{"VM": "a", "Host": "esx01", "Cluster": "prod"},
		{"VM": "b", "Host": "esx02", "Datastore": "ds01"},
	}

	cols := ColumnsFromRows(rows, []string{"VM", "Powerstate", "Host"})
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}

	// Preferred fields lead when present; Powerstate exists in no row.
	assert.Equal(t, []string{"VM", "Host", "Cluster", "Datastore"}, keys)
}
