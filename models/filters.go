package models

// VMFilters defines parameters for filtering the VM list.
type VMFilters struct {
	Source           string `json:"source,omitempty"`
	FilterSearchText string `json:"search,omitempty"`
	FilterPowerstate string `json:"powerstate,omitempty"`
	FilterCluster    string `json:"cluster,omitempty"`
	FilterHost       string `json:"host,omitempty"`
	FilterOS         string `json:"os,omitempty"`
	FilterOSType     string `json:"os_type,omitempty"`
	// FilterPool matches resource pools by substring, FilterPoolPath by the
	// exact pool path.
	FilterPool     string `json:"pool,omitempty"`
	FilterPoolPath string `json:"pool_path,omitempty"`
	SortBy         string `json:"sort_by,omitempty"`
	SortOrder      string `json:"sort_order,omitempty"`
	// SelectedClusters carries the facet selection; nil means no facet
	// filtering, an empty slice excludes everything.
	SelectedClusters []string `json:"selected_clusters,omitempty"`
}

// HostFilters defines parameters for narrowing the host hierarchy. The
// hierarchy is keyed, not ordered, so there is no sort here.
type HostFilters struct {
	Source           string `json:"source,omitempty"`
	FilterSearchText string `json:"search,omitempty"`
	FilterDatacenter string `json:"datacenter,omitempty"`
	FilterCluster    string `json:"cluster,omitempty"`
}

// DatastoreFilters defines parameters for filtering the datastore list.
type DatastoreFilters struct {
	Source           string `json:"source,omitempty"`
	FilterSearchText string `json:"search,omitempty"`
	SortBy           string `json:"sort_by,omitempty"`
	SortOrder        string `json:"sort_order,omitempty"`
}

// VMFilterOptions lists the values still available for each dropdown after
// the current filters narrowed the collection.
type VMFilterOptions struct {
	Clusters []string `json:"clusters"`
	Hosts    []string `json:"hosts"`
	OS       []string `json:"os"`
	OSTypes  []string `json:"os_types"`
	Sources  []string `json:"sources"`
}

// VMSummary is the aggregate block rendered above the VM table.
type VMSummary struct {
	Count    int     `json:"count"`
	CPU      int     `json:"cpu"`
	MemoryGB float64 `json:"memory_gb"`
	DiskGB   float64 `json:"disk_gb"`
}
