package handlers

import (
	"net/http"
	"strings"

	"rvsalt/core"
	"rvsalt/database"
	"rvsalt/logger"
	"rvsalt/models"
)

func vmFiltersFromQuery(r *http.Request) models.VMFilters {
	q := r.URL.Query()
	f := models.VMFilters{
		Source:           q.Get("source"),
		FilterSearchText: q.Get("search"),
		FilterPowerstate: q.Get("powerstate"),
		FilterCluster:    q.Get("cluster"),
		FilterHost:       q.Get("host"),
		FilterOS:         q.Get("os"),
		FilterOSType:     q.Get("os_type"),
		FilterPool:       q.Get("pool"),
		FilterPoolPath:   q.Get("pool_path"),
		SortBy:           q.Get("sort_by"),
		SortOrder:        q.Get("sort_order"),
	}
	if raw, ok := q["clusters"]; ok {
		// clusters= (present but empty) means nothing selected.
		f.SelectedClusters = []string{}
		for _, chunk := range raw {
			for _, name := range strings.Split(chunk, ",") {
				if name != "" {
					f.SelectedClusters = append(f.SelectedClusters, name)
				}
			}
		}
	}
	return f
}

// ListVMsHandler handles GET requests for the filtered VM list with its
// summary block and the progressive filter options.
func ListVMsHandler(w http.ResponseWriter, r *http.Request) {
	filters := vmFiltersFromQuery(r)

	vinfo := loadSheet("vInfo", filters.Source)

	var allSources []string
	if filters.Source != "" {
		allSources = []string{filters.Source}
	} else {
		sources, err := database.GetAllSources()
		if err != nil {
			logger.Error("ListVMsHandler: Error fetching sources: %v", err)
		}
		for _, src := range sources {
			allSources = append(allSources, src.Name)
		}
	}

	writeJSON(w, http.StatusOK, core.BuildVMList(vinfo, filters, allSources))
}

func vmSheetRows(sheet, source, vmName string) []map[string]interface{} {
	rows := core.FilterByField(loadSheet(sheet, source), "VM", vmName)
	plain := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		plain[i] = row
	}
	return plain
}

// GetVMDetailHandler handles GET requests for a single VM with every sheet
// that references it.
func GetVMDetailHandler(w http.ResponseWriter, r *http.Request, vmName string) {
	source := r.URL.Query().Get("source")

	vinfo := core.FilterByField(loadSheet("vInfo", source), "VM", vmName)
	if len(vinfo) == 0 {
		writeError(w, http.StatusNotFound, "VM not found")
		return
	}

	resp := models.VMDetailResponse{
		Info:      vinfo[0],
		Disks:     vmSheetRows("vDisk", source, vmName),
		Networks:  vmSheetRows("vNetwork", source, vmName),
		Snapshots: vmSheetRows("vSnapshot", source, vmName),
		CPU:       vmSheetRows("vCPU", source, vmName),
		Memory:    vmSheetRows("vMemory", source, vmName),
	}
	writeJSON(w, http.StatusOK, resp)
}
