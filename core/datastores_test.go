package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvsalt/models"
	"rvsalt/tabular"
)

func testDatastores() ([]tabular.Record, []tabular.Record) {
	vdatastore := []tabular.Record{
		{"Name": "ds-slow", "Capacity MiB": "1.048.576", "Free MiB": 524288.0, "Source": "ist"},
		{"Name": "ds-fast", "Capacity MiB": 2097152.0, "Free MiB": 102400.0, "Source": "ist"},
		{"Name": "ds-local", "Capacity MiB": 524288.0, "Source": "ist"},
	}
	vmultipath := []tabular.Record{
		{"Datastore": "ds-fast", "Vendor": "PURE", "Model": "FlashArray", "Serial #": "A1"},
		{"Datastore": "ds-fast", "Vendor": "OTHER", "Model": "ignored", "Serial #": "A2"},
		{"Datastore": "ds-slow", "Vendor": "DELL", "Model": "Unity", "Serial #": "B1"},
	}
	return vdatastore, vmultipath
}

func TestJoinDatastores(t *testing.T) {
	vdatastore, vmultipath := testDatastores()
	rows := JoinDatastores(vdatastore, vmultipath)
	require.Len(t, rows, 3)

	byName := map[string]tabular.Record{}
	for _, r := range rows {
		byName[r.Text("Name")] = r
	}

	// First multipath entry per datastore wins.
	assert.Equal(t, "PURE", byName["ds-fast"].Text("Vendor"))
	assert.Equal(t, "DELL", byName["ds-slow"].Text("Vendor"))
	assert.False(t, byName["ds-local"].Has("Vendor"))

	// Turkish-formatted capacity normalized to a number.
	assert.Equal(t, 1048576.0, byName["ds-slow"]["Capacity MiB"])
}

func TestBuildDatastoreListSearchAndSort(t *testing.T) {
	vdatastore, vmultipath := testDatastores()

	rows := BuildDatastoreList(vdatastore, vmultipath, models.DatastoreFilters{FilterSearchText: "pure"})
	require.Len(t, rows, 1)
	assert.Equal(t, "ds-fast", rows[0].Text("Name"))

	rows = BuildDatastoreList(vdatastore, vmultipath, models.DatastoreFilters{
		SortBy: "Capacity MiB", SortOrder: "desc",
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "ds-fast", rows[0].Text("Name"))
	assert.Equal(t, "ds-slow", rows[1].Text("Name"))
	assert.Equal(t, "ds-local", rows[2].Text("Name"))

	rows = BuildDatastoreList(nil, nil, models.DatastoreFilters{FilterSearchText: "x"})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
