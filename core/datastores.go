package core

import (
	"rvsalt/models"
	"rvsalt/tabular"
)

// datastoreColumns is the column set the datastore table sorts over.
var datastoreColumns = []string{
	"Name", "Vendor", "Model", "Serial #", "Capacity MiB", "Free MiB",
	"Provisioned MiB", "In Use MiB", "# VMs", "# Hosts", "Source",
}

// datastore numeric columns normalized before serving.
var datastoreNumericCols = []string{
	"Capacity MiB", "Free MiB", "Provisioned MiB", "In Use MiB", "# VMs", "# Hosts",
}

// JoinDatastores enriches vDatastore rows with the physical storage identity
// (vendor, model, serial) of the first multipath entry naming the datastore.
func JoinDatastores(vdatastore, vmultipath []tabular.Record) []tabular.Record {
	type pathInfo struct{ vendor, model, serial string }
	byDatastore := map[string]pathInfo{}
	for _, mp := range vmultipath {
		name := mp.Text("Datastore")
		if name == "" {
			continue
		}
		if _, seen := byDatastore[name]; !seen {
			byDatastore[name] = pathInfo{
				vendor: mp.Text("Vendor"),
				model:  mp.Text("Model"),
				serial: mp.Text("Serial #"),
			}
		}
	}

	out := make([]tabular.Record, 0, len(vdatastore))
	for _, ds := range vdatastore {
		joined := make(tabular.Record, len(ds)+3)
		for k, v := range ds {
			joined[k] = v
		}
		for _, col := range datastoreNumericCols {
			if joined.Has(col) {
				joined[col] = numField(joined, col)
			}
		}
		if info, ok := byDatastore[ds.Text("Name")]; ok {
			joined["Vendor"] = info.vendor
			joined["Model"] = info.model
			joined["Serial #"] = info.serial
		}
		out = append(out, joined)
	}
	return out
}

// BuildDatastoreList joins, filters and sorts the datastore table in one
// pass. The result is never nil so the endpoint always renders a list.
func BuildDatastoreList(vdatastore, vmultipath []tabular.Record, f models.DatastoreFilters) []tabular.Record {
	rows := JoinDatastores(vdatastore, vmultipath)
	rows = tabular.Apply(rows, tabular.Query{
		Search:       f.FilterSearchText,
		SearchFields: []string{"Name", "Vendor", "Model"},
	})
	if f.SortBy != "" {
		sorter := tabular.NewSorter(nil)
		rows = sorter.SortByState(rows, columnsFor(datastoreColumns), tabular.SortState{
			ColumnKey: f.SortBy,
			Direction: tabular.SortDirection(f.SortOrder),
		})
	}
	if rows == nil {
		rows = []tabular.Record{}
	}
	return rows
}
