package models

// Source describes one imported inventory export file.
type Source struct {
	Name       string `json:"name"`
	Filename   string `json:"filename"`
	ImportID   string `json:"import_id"`
	ImportedAt string `json:"imported_at"`
	RowCount   int64  `json:"row_count"`
}

// SourceStats is the dashboard summary block for a single source.
type SourceStats struct {
	Name          string  `json:"name"`
	VMs           int     `json:"vms"`
	PoweredOn     int     `json:"powered_on"`
	PoweredOff    int     `json:"powered_off"`
	Templates     int     `json:"templates"`
	TotalMemoryGB float64 `json:"total_memory_gb"`
	TotalCPU      int     `json:"total_cpu"`
	TotalDiskGB   float64 `json:"total_disk_gb"`
	Snapshots     int     `json:"snapshots"`
	OldSnapshots  int     `json:"old_snapshots"`
}

// Stats aggregates per-source stats plus infrastructure-wide totals.
type Stats struct {
	Sources []SourceStats `json:"sources"`
	Total   SourceStats   `json:"total"`
}

// Risk is a single finding of the infrastructure risk analysis.
type Risk struct {
	Target         string `json:"target"`
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Source         string `json:"source"`
}

// RiskStats counts findings per severity.
type RiskStats struct {
	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`
}

// Recommendation is a right-sizing or efficiency suggestion for one VM.
type Recommendation struct {
	VM               string  `json:"vm"`
	Type             string  `json:"type"`
	Severity         string  `json:"severity"`
	Reason           string  `json:"reason"`
	CurrentValue     string  `json:"current_value"`
	RecommendedValue string  `json:"recommended_value"`
	PotentialSavings float64 `json:"potential_savings"`
	ResourceType     string  `json:"resource_type"`
	Host             string  `json:"host"`
	Cluster          string  `json:"cluster"`
	Datacenter       string  `json:"datacenter"`
	Source           string  `json:"source"`
}

// DRPair links a production VM with its detected replica.
type DRPair struct {
	ProductionVM      string  `json:"production_vm"`
	ProductionDC      string  `json:"production_dc"`
	ProductionCluster string  `json:"production_cluster"`
	ProductionHost    string  `json:"production_host"`
	ReplicaVM         string  `json:"replica_vm"`
	ReplicaDC         string  `json:"replica_dc"`
	ReplicaCluster    string  `json:"replica_cluster"`
	ReplicaHost       string  `json:"replica_host"`
	VCPU              int     `json:"vcpu"`
	MemoryGB          float64 `json:"memory_gb"`
	DiskGB            float64 `json:"disk_gb"`
	OS                string  `json:"os"`
	Source            string  `json:"source"`
}

// UnmatchedReplica is a replica-looking VM without a production counterpart.
type UnmatchedReplica struct {
	VM         string  `json:"vm"`
	Datacenter string  `json:"datacenter"`
	Cluster    string  `json:"cluster"`
	VCPU       int     `json:"vcpu"`
	MemoryGB   float64 `json:"memory_gb"`
	DiskGB     float64 `json:"disk_gb"`
	OS         string  `json:"os,omitempty"`
	Source     string  `json:"source,omitempty"`
	Score      float64 `json:"score,omitempty"`
}

// DCFlow aggregates replication volume between two datacenters.
type DCFlow struct {
	SourceDC      string  `json:"source_dc"`
	TargetDC      string  `json:"target_dc"`
	VMCount       int     `json:"vm_count"`
	TotalVCPU     int     `json:"total_vcpu"`
	TotalMemoryGB float64 `json:"total_memory_gb"`
	TotalDiskGB   float64 `json:"total_disk_gb"`
}

// Note is a persisted free-text annotation on a VM, host or datastore.
type Note struct {
	TargetType  string `json:"target_type"`
	TargetName  string `json:"target_name"`
	NoteContent string `json:"note_content"`
	UpdatedAt   string `json:"updated_at"`
}

// HostMetrics holds the derived capacity figures for one ESXi host.
type HostMetrics struct {
	Host           string  `json:"host"`
	PhysicalCores  int     `json:"physical_cores"`
	PhysicalRAMGB  float64 `json:"physical_ram_gb"`
	CPUSockets     int     `json:"cpu_sockets"`
	CoresPerSocket int     `json:"cores_per_socket"`
	CPUModel       string  `json:"cpu_model"`
	ESXiVersion    string  `json:"esxi_version"`
	Datacenter     string  `json:"datacenter"`
	Cluster        string  `json:"cluster"`
	Source         string  `json:"source"`
	CPUUsagePct    float64 `json:"cpu_usage_pct"`
	RAMUsagePct    float64 `json:"ram_usage_pct"`
	VCPUCount      int     `json:"vcpu_count"`
	VRAMGB         float64 `json:"vram_gb"`
	VCPUPCoreRatio float64 `json:"vcpu_pcore_ratio"`
	VRAMPRAMRatio  float64 `json:"vram_pram_ratio"`
}
