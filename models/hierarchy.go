package models

// HierarchyVM is the compact VM row nested under a host in the
// datacenter/cluster/host hierarchy view.
type HierarchyVM struct {
	Name       string  `json:"name"`
	Powerstate string  `json:"powerstate"`
	VCPU       int     `json:"vcpu"`
	RAMGB      float64 `json:"ram_gb"`
	DiskGB     float64 `json:"disk_gb"`
	OS         string  `json:"os"`
}

// HostGroup is one host in the hierarchy with its capacity metrics and VMs.
type HostGroup struct {
	HostMetrics
	VMs        []HierarchyVM `json:"vms"`
	TotalVMs   int           `json:"total_vms"`
	PoweredOn  int           `json:"powered_on"`
	TotalVCPU  int           `json:"total_vcpu"`
	TotalRAMGB float64       `json:"total_ram_gb"`
}

// ClusterGroup aggregates the hosts of one cluster.
type ClusterGroup struct {
	Hosts              map[string]*HostGroup `json:"hosts"`
	HostCount          int                   `json:"host_count"`
	TotalVMs           int                   `json:"total_vms"`
	PoweredOn          int                   `json:"powered_on"`
	TotalVCPU          int                   `json:"total_vcpu"`
	TotalRAMGB         float64               `json:"total_ram_gb"`
	TotalPhysicalCores int                   `json:"total_physical_cores"`
	TotalPhysicalRAMGB float64               `json:"total_physical_ram_gb"`
	AvgCPUUsagePct     float64               `json:"avg_cpu_usage_pct"`
	AvgRAMUsagePct     float64               `json:"avg_ram_usage_pct"`
	VCPUPCoreRatio     float64               `json:"vcpu_pcore_ratio"`
	VRAMPRAMRatio      float64               `json:"vram_pram_ratio"`
}

// DatacenterGroup aggregates the clusters of one datacenter.
type DatacenterGroup struct {
	Clusters           map[string]*ClusterGroup `json:"clusters"`
	ClusterCount       int                      `json:"cluster_count"`
	HostCount          int                      `json:"host_count"`
	TotalVMs           int                      `json:"total_vms"`
	PoweredOn          int                      `json:"powered_on"`
	TotalVCPU          int                      `json:"total_vcpu"`
	TotalRAMGB         float64                  `json:"total_ram_gb"`
	TotalPhysicalCores int                      `json:"total_physical_cores"`
	TotalPhysicalRAMGB float64                  `json:"total_physical_ram_gb"`
	AvgCPUUsagePct     float64                  `json:"avg_cpu_usage_pct"`
	AvgRAMUsagePct     float64                  `json:"avg_ram_usage_pct"`
}

// SourceHierarchy is the hierarchy subtree of one inventory source.
type SourceHierarchy struct {
	Datacenters map[string]*DatacenterGroup `json:"datacenters"`
}

// Hierarchy is the full source → datacenter → cluster → host → VM tree
// served by the hosts-clusters endpoint.
type Hierarchy map[string]*SourceHierarchy

// InventoryVM is a leaf of the plain inventory tree.
type InventoryVM struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	PowerState string `json:"power_state"`
}

// InventoryTree nests VMs by source, datacenter, cluster and host.
type InventoryTree map[string]map[string]map[string]map[string][]InventoryVM
