package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvsalt/models"
	"rvsalt/tabular"
)

func vmRow(name, power, cluster, host, osName string, cpus, memMB float64) tabular.Record {
	return tabular.Record{
		"VM": name, "Powerstate": power, "Cluster": cluster, "Host": host,
		osFieldName: osName, "CPUs": cpus, "Memory": memMB,
		"Total disk capacity MiB": 10240.0, "Source": "ist",
	}
}

func testVMs() []tabular.Record {
	return []tabular.Record{
		vmRow("web01", "poweredOn", "prod", "esx01", "Ubuntu Linux (64-bit)", 4, 8192),
		vmRow("web02", "poweredOn", "prod", "esx02", "Microsoft Windows Server 2019 (64-bit)", 4, 8192),
		vmRow("pc01", "poweredOn", "vdi", "esx03", "Microsoft Windows 10 (64-bit)", 2, 4096),
		vmRow("old01", "poweredOff", "prod", "esx01", "Ubuntu Linux (64-bit)", 2, 2048),
	}
}

func TestBuildVMListSummaryAndOSType(t *testing.T) {
	resp := BuildVMList(testVMs(), models.VMFilters{}, []string{"ist"})

	assert.Equal(t, 4, resp.Summary.Count)
	assert.Equal(t, 12, resp.Summary.CPU)
	assert.InDelta(t, 22.0, resp.Summary.MemoryGB, 0.01)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "Srv", resp.Data[0]["OS_Type"])
	assert.Equal(t, []string{"ist"}, resp.FilterOptions.Sources)
}

func TestBuildVMListProgressiveOptions(t *testing.T) {
	resp := BuildVMList(testVMs(), models.VMFilters{FilterPowerstate: "poweredOn"}, []string{"ist"})

	// Options reflect the powerstate filter: old01 is gone.
	assert.Equal(t, []string{"prod", "vdi"}, resp.FilterOptions.Clusters)
	assert.Equal(t, []string{"esx01", "esx02", "esx03"}, resp.FilterOptions.Hosts)
	assert.Equal(t, 3, resp.Summary.Count)

	resp = BuildVMList(testVMs(), models.VMFilters{FilterPowerstate: "poweredOn", FilterCluster: "prod"}, []string{"ist"})
	// Cluster options still span the powerstate-filtered set...
	assert.Equal(t, []string{"prod", "vdi"}, resp.FilterOptions.Clusters)
	// ...while host options narrow to the chosen cluster.
	assert.Equal(t, []string{"esx01", "esx02"}, resp.FilterOptions.Hosts)
	assert.Equal(t, 2, resp.Summary.Count)
}

func TestBuildVMListResourcePoolFilters(t *testing.T) {
	vms := testVMs()
	vms[0]["Resource pool"] = "Resources/Web/Frontend"
	vms[1]["Resource pool"] = "Resources/Web/Backend"
	vms[2]["Resource pool"] = "Resources/VDI"

	resp := BuildVMList(vms, models.VMFilters{FilterPool: "web"}, nil)
	assert.Equal(t, 2, resp.Summary.Count)

	resp = BuildVMList(vms, models.VMFilters{FilterPoolPath: "Resources/Web/Backend"}, nil)
	require.Equal(t, 1, resp.Summary.Count)
	assert.Equal(t, "web02", resp.Data[0]["VM"])

	// Exact path filter, not a substring.
	resp = BuildVMList(vms, models.VMFilters{FilterPoolPath: "Resources/Web"}, nil)
	assert.Equal(t, 0, resp.Summary.Count)

	// old01 has no pool at all; a pool filter excludes it.
	resp = BuildVMList(vms, models.VMFilters{FilterPool: "Resources"}, nil)
	assert.Equal(t, 3, resp.Summary.Count)
}

func TestBuildVMListSearchAndOSType(t *testing.T) {
	resp := BuildVMList(testVMs(), models.VMFilters{FilterSearchText: "WEB"}, nil)
	assert.Equal(t, 2, resp.Summary.Count)

	resp = BuildVMList(testVMs(), models.VMFilters{FilterOSType: "Dsk"}, nil)
	require.Equal(t, 1, resp.Summary.Count)
	assert.Equal(t, "pc01", resp.Data[0]["VM"])
	assert.Equal(t, []string{"Microsoft Windows 10 (64-bit)"}, resp.FilterOptions.OS)
}

func TestBuildVMListFacetSelection(t *testing.T) {
	resp := BuildVMList(testVMs(), models.VMFilters{SelectedClusters: []string{"vdi"}}, nil)
	require.Equal(t, 1, resp.Summary.Count)
	assert.Equal(t, "pc01", resp.Data[0]["VM"])

	// Empty selection excludes everything; nil means no facet filter.
	resp = BuildVMList(testVMs(), models.VMFilters{SelectedClusters: []string{}}, nil)
	assert.Equal(t, 0, resp.Summary.Count)
}

func TestBuildVMListSorting(t *testing.T) {
	resp := BuildVMList(testVMs(), models.VMFilters{SortBy: "CPUs", SortOrder: "desc"}, nil)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, 4.0, resp.Data[0]["CPUs"])
	assert.Equal(t, 2.0, resp.Data[3]["CPUs"])
}

func TestBuildVMListEmpty(t *testing.T) {
	resp := BuildVMList(nil, models.VMFilters{}, nil)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 0, resp.Summary.Count)
	assert.NotNil(t, resp.FilterOptions.Clusters)
}
