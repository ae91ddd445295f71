package models

// ErrorResponse is a generic error response structure for the API.
type ErrorResponse struct {
	Message string `json:"message" example:"Error message describing the issue"`
}

// VMListResponse is the envelope of the VM list endpoint: filtered rows plus
// the summary and the still-available filter options.
type VMListResponse struct {
	Data          []map[string]interface{} `json:"data"`
	Summary       VMSummary                `json:"summary"`
	FilterOptions VMFilterOptions          `json:"filter_options"`
}

// VMDetailResponse bundles every sheet related to a single VM.
type VMDetailResponse struct {
	Info      map[string]interface{}   `json:"info"`
	Disks     []map[string]interface{} `json:"disks"`
	Networks  []map[string]interface{} `json:"networks"`
	Snapshots []map[string]interface{} `json:"snapshots"`
	CPU       []map[string]interface{} `json:"cpu"`
	Memory    []map[string]interface{} `json:"memory"`
}

// RiskReport is the envelope of the risk analysis endpoint.
type RiskReport struct {
	Risks []Risk    `json:"risks"`
	Stats RiskStats `json:"stats"`
}

// OptimizationReport is the envelope of the right-sizing endpoint.
type OptimizationReport struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalVCPUSaving float64          `json:"total_vcpu_saving"`
	TotalRAMSaving  float64          `json:"total_ram_saving_gb"`
}

// DRReport is the envelope of the disaster-recovery analysis endpoint.
type DRReport struct {
	Summary           DRSummary          `json:"summary"`
	DCFlows           []DCFlow           `json:"dc_flows"`
	DRSites           []DRSite           `json:"dr_sites"`
	MatchedPairs      []DRPair           `json:"matched_pairs"`
	UnmatchedReplicas []UnmatchedReplica `json:"unmatched_replicas"`
	UnprotectedVMs    []UnmatchedReplica `json:"unprotected_critical"`
}

// DRSummary gives the replication coverage figures of a DR analysis.
type DRSummary struct {
	TotalProductionVMs int     `json:"total_production_vms"`
	TotalReplicatedVMs int     `json:"total_replicated_vms"`
	CoveragePercent    float64 `json:"replication_coverage_pct"`
	UnprotectedVMCount int     `json:"unprotected_vm_count"`
	DCFlowCount        int     `json:"dc_flow_count"`
	DRSiteCount        int     `json:"dr_site_count"`
}

// DRSite describes a DR datacenter's capacity against the load it would
// receive in a failover.
type DRSite struct {
	Datacenter        string  `json:"datacenter"`
	HostCount         int     `json:"host_count"`
	TotalCores        int     `json:"total_cores"`
	TotalMemoryGB     float64 `json:"total_memory_gb"`
	CurrentCPUUsage   float64 `json:"current_cpu_usage_pct"`
	CurrentMemUsage   float64 `json:"current_mem_usage_pct"`
	ReplicatedVMCount int     `json:"replicated_vm_count"`
	RequiredVCPU      int     `json:"required_vcpu"`
	RequiredMemoryGB  float64 `json:"required_memory_gb"`
	RequiredDiskGB    float64 `json:"required_disk_gb"`
	CPUCapacityRatio  float64 `json:"cpu_capacity_ratio"`
	MemCapacityRatio  float64 `json:"mem_capacity_ratio"`
	ReadinessScore    float64 `json:"readiness_score"`
	FailoverFeasible  bool    `json:"failover_feasible"`
}

// ResourceUsageRow aggregates VM load for one cluster or one host, split by
// power state. RAM and disk figures are GiB.
type ResourceUsageRow struct {
	Source    string  `json:"Source"`
	Cluster   string  `json:"Cluster"`
	Host      string  `json:"Host,omitempty"`
	VMsOn     int     `json:"vm_on"`
	VMsOff    int     `json:"vm_off"`
	CPUOn     int     `json:"cpu_on"`
	CPUOff    int     `json:"cpu_off"`
	RAMOnGB   float64 `json:"ram_on"`
	RAMOffGB  float64 `json:"ram_off"`
	DiskOnGB  float64 `json:"disk_on"`
	DiskOffGB float64 `json:"disk_off"`
}

// ResourceUsageReport is the envelope of the resource usage report.
type ResourceUsageReport struct {
	ByCluster []ResourceUsageRow `json:"by_cluster"`
	ByHost    []ResourceUsageRow `json:"by_host"`
}

// OSDistributionRow counts the fleet share of one guest OS.
type OSDistributionRow struct {
	OS          string  `json:"OS"`
	VMCount     int     `json:"VM Count"`
	TotalCPUs   int     `json:"Total CPUs"`
	TotalMemory float64 `json:"Total Memory (MiB)"`
}

// ReservedVM is one VM holding a CPU or memory reservation.
type ReservedVM struct {
	VM             string  `json:"VM"`
	VMID           string  `json:"VM ID"`
	Source         string  `json:"Source"`
	Powerstate     string  `json:"Powerstate"`
	Cluster        string  `json:"Cluster"`
	Host           string  `json:"Host"`
	CPUReservedMHz float64 `json:"cpu_reserved_mhz,omitempty"`
	CPULimit       string  `json:"cpu_limit,omitempty"`
	MemReservedMB  float64 `json:"mem_reserved_mb,omitempty"`
	MemLimit       string  `json:"mem_limit,omitempty"`
}

// WasteDisk is one disk flagged by the disk waste report.
type WasteDisk struct {
	VM               string  `json:"vm"`
	DiskName         string  `json:"disk_name"`
	WasteType        string  `json:"waste_type"`
	CapacityGB       float64 `json:"capacity_gb"`
	EstimatedWasteGB float64 `json:"estimated_waste_gb"`
	Thin             bool    `json:"thin"`
	Source           string  `json:"source"`
}

// DiskWasteReport is the envelope of the disk waste report.
type DiskWasteReport struct {
	TotalWastedGB float64     `json:"total_wasted_gb"`
	DiskCount     int         `json:"disk_count"`
	Disks         []WasteDisk `json:"disks"`
}

// ZombieDisk is one orphaned disk file resolved from a health finding.
type ZombieDisk struct {
	VM        string `json:"VM"`
	Datastore string `json:"Datastore"`
	Cluster   string `json:"Cluster"`
	Filename  string `json:"Filename"`
	FullPath  string `json:"Full_Path"`
	Reason    string `json:"Reason"`
	Source    string `json:"Source"`
}

// ZombieDiskReport is the envelope of the zombie disk report.
type ZombieDiskReport struct {
	DiskCount     int          `json:"disk_count"`
	TotalWastedGB float64      `json:"total_wasted_gb"`
	VMCount       int          `json:"vm_count"`
	Disks         []ZombieDisk `json:"disks"`
}
