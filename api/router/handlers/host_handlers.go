package handlers

import (
	"net/http"

	"rvsalt/core"
	"rvsalt/models"
	"rvsalt/tabular"
)

// HostsClustersHandler handles GET requests for the hierarchical
// datacenter/cluster/host structure with capacity metrics.
func HostsClustersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.HostFilters{
		Source:           q.Get("source"),
		FilterSearchText: q.Get("search"),
		FilterDatacenter: q.Get("datacenter"),
		FilterCluster:    q.Get("cluster"),
	}

	vhost := core.FilterHosts(loadSheet("vHost", filters.Source), filters)
	vinfo := loadSheet("vInfo", filters.Source)
	if filters.FilterSearchText != "" || filters.FilterDatacenter != "" || filters.FilterCluster != "" {
		// VMs must not resurrect hosts the filter removed.
		kept := map[string]bool{}
		for _, host := range vhost {
			kept[host.Text("Host")] = true
		}
		var onKept []tabular.Record
		for _, vm := range vinfo {
			if kept[vm.Text("Host")] {
				onKept = append(onKept, vm)
			}
		}
		vinfo = onKept
	}

	metrics := core.BuildHostMetrics(vhost)
	writeJSON(w, http.StatusOK, core.BuildHierarchy(vinfo, vhost, metrics))
}

// InventoryHandler handles GET requests for the plain inventory tree.
func InventoryHandler(w http.ResponseWriter, r *http.Request) {
	vinfo := loadSheet("vInfo", r.URL.Query().Get("source"))
	writeJSON(w, http.StatusOK, core.BuildInventoryTree(vinfo))
}

// GetHostHardwareHandler handles GET requests for one host's hardware detail:
// the vHost row plus its HBAs, NICs, vmkernel ports and storage paths.
func GetHostHardwareHandler(w http.ResponseWriter, r *http.Request, hostName string) {
	source := r.URL.Query().Get("source")

	hosts := core.FilterByField(loadSheet("vHost", source), "Host", hostName)
	if len(hosts) == 0 {
		writeError(w, http.StatusNotFound, "Host not found")
		return
	}

	resp := map[string]interface{}{
		"hardware":      hosts[0],
		"hbas":          core.FilterByField(loadSheet("vHBA", source), "Host", hostName),
		"nics":          core.FilterByField(loadSheet("vNIC", source), "Host", hostName),
		"vmks":          core.FilterByField(loadSheet("vSC_VMK", source), "Host", hostName),
		"storage_paths": core.FilterByField(loadSheet("vMultiPath", source), "Host", hostName),
		"snapshots":     []interface{}{},
	}

	// Snapshots of the VMs running on this host.
	vms := core.FilterByField(loadSheet("vInfo", source), "Host", hostName)
	if len(vms) > 0 {
		onHost := map[string]bool{}
		for _, vm := range vms {
			onHost[vm.Text("VM")] = true
		}
		var snaps []interface{}
		for _, snap := range loadSheet("vSnapshot", source) {
			if onHost[snap.Text("VM")] {
				snaps = append(snaps, snap)
			}
		}
		if snaps != nil {
			resp["snapshots"] = snaps
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
