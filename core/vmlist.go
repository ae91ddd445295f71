package core

import (
	"sort"

	"rvsalt/models"
	"rvsalt/tabular"
)

// vmListColumns is the field subset the VM table renders.
var vmListColumns = []string{
	"VM", "Powerstate", "CPUs", "Memory", "Total disk capacity MiB",
	osFieldName, "Host", "Cluster", "Datacenter",
	"Primary IP Address", "DNS Name", "Annotation", "Source", "VM ID", "OS_Type",
}

// BuildVMList filters and sorts the vInfo sheet and recomputes the still
// available dropdown options as the filters narrow the set. Option lists are
// captured mid-pipeline: cluster options reflect the powerstate filter only,
// host options also the cluster filter, and so on down the chain.
func BuildVMList(vinfo []tabular.Record, f models.VMFilters, allSources []string) models.VMListResponse {
	resp := models.VMListResponse{
		Data: []map[string]interface{}{},
		FilterOptions: models.VMFilterOptions{
			Clusters: []string{}, Hosts: []string{}, OS: []string{},
			OSTypes: []string{}, Sources: allSources,
		},
	}
	if len(vinfo) == 0 {
		return resp
	}

	rows := make([]tabular.Record, 0, len(vinfo))
	for _, vm := range vinfo {
		enriched := make(tabular.Record, len(vm)+1)
		for k, v := range vm {
			enriched[k] = v
		}
		enriched["OS_Type"] = ClassifyOSType(vm.Text(osFieldName))
		rows = append(rows, enriched)
	}

	filtered := tabular.Apply(rows, tabular.Query{
		Search:       f.FilterSearchText,
		SearchFields: []string{"VM"},
	})
	if f.FilterPowerstate != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{"Powerstate": f.FilterPowerstate},
		})
	}

	resp.FilterOptions.Clusters = uniqueValues(filtered, "Cluster")
	resp.FilterOptions.Hosts = uniqueValues(filtered, "Host")
	resp.FilterOptions.OS = uniqueValues(filtered, osFieldName)
	resp.FilterOptions.OSTypes = uniqueValues(filtered, "OS_Type")

	if f.FilterCluster != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{"Cluster": f.FilterCluster},
		})
		resp.FilterOptions.Hosts = uniqueValues(filtered, "Host")
		resp.FilterOptions.OS = uniqueValues(filtered, osFieldName)
		resp.FilterOptions.OSTypes = uniqueValues(filtered, "OS_Type")
	}
	if f.FilterHost != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{"Host": f.FilterHost},
		})
		resp.FilterOptions.OS = uniqueValues(filtered, osFieldName)
		resp.FilterOptions.OSTypes = uniqueValues(filtered, "OS_Type")
	}
	if f.FilterOSType != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{"OS_Type": f.FilterOSType},
		})
		resp.FilterOptions.OS = uniqueValues(filtered, osFieldName)
	}
	if f.FilterOS != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{osFieldName: f.FilterOS},
		})
	}
	if f.FilterPool != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Search:       f.FilterPool,
			SearchFields: []string{"Resource pool"},
		})
	}
	if f.FilterPoolPath != "" {
		filtered = tabular.Apply(filtered, tabular.Query{
			Discrete: map[string]string{"Resource pool": f.FilterPoolPath},
		})
	}
	if f.SelectedClusters != nil {
		selection := tabular.SelectionSet{}
		for _, name := range f.SelectedClusters {
			selection[name] = true
		}
		filtered = tabular.Apply(filtered, tabular.Query{
			FacetField: "Cluster",
			Selection:  selection,
		})
	}

	if f.SortBy != "" {
		sorter := tabular.NewSorter(nil)
		filtered = sorter.SortByState(filtered, columnsFor(vmListColumns), tabular.SortState{
			ColumnKey: f.SortBy,
			Direction: tabular.SortDirection(f.SortOrder),
		})
	}

	for _, vm := range filtered {
		resp.Summary.Count++
		resp.Summary.CPU += int(numField(vm, "CPUs"))
		resp.Summary.MemoryGB += numField(vm, "Memory") / 1024
		resp.Summary.DiskGB += numField(vm, "Total disk capacity MiB") / 1024

		row := make(map[string]interface{}, len(vmListColumns))
		for _, col := range vmListColumns {
			if vm.Has(col) {
				row[col] = vm[col]
			}
		}
		resp.Data = append(resp.Data, row)
	}
	resp.Summary.MemoryGB = round2(resp.Summary.MemoryGB)
	resp.Summary.DiskGB = round2(resp.Summary.DiskGB)
	return resp
}

// FilterByField keeps the rows whose field renders to the given text.
func FilterByField(rows []tabular.Record, field, value string) []tabular.Record {
	var out []tabular.Record
	for _, r := range rows {
		if r.Text(field) == value {
			out = append(out, r)
		}
	}
	return out
}

func uniqueValues(rows []tabular.Record, field string) []string {
	seen := map[string]bool{}
	var vals []string
	for _, r := range rows {
		v := r.Text(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		vals = append(vals, v)
	}
	sort.Strings(vals)
	if vals == nil {
		vals = []string{}
	}
	return vals
}

func columnsFor(keys []string) []tabular.Column {
	cols := make([]tabular.Column, len(keys))
	for i, k := range keys {
		cols[i] = tabular.Column{Key: k, Title: k}
	}
	return cols
}
