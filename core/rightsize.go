package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rvsalt/models"
	"rvsalt/tabular"
)

// RightsizeOptions carries the tunable thresholds of the optimization pass.
type RightsizeOptions struct {
	LowCPUUsagePct      float64
	DefaultHostSpeedMHz float64
	SnapshotOldDays     int
	Now                 time.Time
}

// RightsizeInput bundles the sheets the optimization pass reads. Missing
// sheets are simply empty slices; each check degrades independently.
type RightsizeInput struct {
	VInfo     []tabular.Record
	VHost     []tabular.Record
	VCPU      []tabular.Record
	VTools    []tabular.Record
	VSnapshot []tabular.Record
	VNetwork  []tabular.Record
	VHealth   []tabular.Record
}

var (
	eolOSShortRe = regexp.MustCompile(`(?i)(2003|2008|2012|XP|Vista|CentOS 6|CentOS 5|Ubuntu 14|Ubuntu 16|Debian 8)`)
	hwVersionRe  = regexp.MustCompile(`\d+`)
	badToolsRe   = regexp.MustCompile(`(?i)(toolsOk|guestToolsRunning)`)
	legacyNICRe  = regexp.MustCompile(`(?i)(E1000|Vlance|Flexible)`)
	zombieRe     = regexp.MustCompile(`(?i)zombie`)
)

// AnalyzeRightsizing runs every optimization check and returns the combined
// recommendation list with the aggregate savings.
func AnalyzeRightsizing(in RightsizeInput, opts RightsizeOptions) models.OptimizationReport {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.DefaultHostSpeedMHz <= 0 {
		opts.DefaultHostSpeedMHz = 2400
	}
	if opts.LowCPUUsagePct <= 0 {
		opts.LowCPUUsagePct = 10
	}
	if opts.SnapshotOldDays <= 0 {
		opts.SnapshotOldDays = 7
	}

	hostSpeeds, hostHWVersions := hostCapabilities(in.VHost)
	byVM := indexByVM(in.VInfo)

	report := models.OptimizationReport{Recommendations: []models.Recommendation{}}
	report.Recommendations = append(report.Recommendations, checkCPUUnderutilization(in.VCPU, byVM, hostSpeeds, opts)...)
	report.Recommendations = append(report.Recommendations, checkEOLOS(in.VInfo)...)
	report.Recommendations = append(report.Recommendations, checkOldHWVersion(in.VInfo, hostHWVersions)...)
	report.Recommendations = append(report.Recommendations, checkVMTools(in.VTools, byVM)...)
	report.Recommendations = append(report.Recommendations, checkOldSnapshots(in.VSnapshot, byVM, opts)...)
	report.Recommendations = append(report.Recommendations, checkLegacyNICs(in.VNetwork, byVM)...)
	report.Recommendations = append(report.Recommendations, checkZombieDisks(in.VHealth)...)

	for _, rec := range report.Recommendations {
		if rec.ResourceType == "vCPU" {
			report.TotalVCPUSaving += rec.PotentialSavings
		}
		if rec.ResourceType == "vRAM" {
			report.TotalRAMSaving += rec.PotentialSavings
		}
	}
	return report
}

// hostCapabilities maps host name to CPU speed and to the highest VM
// hardware version the host's ESXi release supports.
func hostCapabilities(vhost []tabular.Record) (speeds map[string]float64, hwVersions map[string]int) {
	speeds = make(map[string]float64)
	hwVersions = make(map[string]int)
	for _, host := range vhost {
		name := host.Text("Host")
		if name == "" {
			continue
		}
		speeds[name] = numField(host, "Speed")

		version := host.Text("ESX Version")
		switch {
		case strings.Contains(version, "7.") || strings.Contains(version, "8."):
			hwVersions[name] = 19
		case strings.Contains(version, "6.7"):
			hwVersions[name] = 15
		default:
			hwVersions[name] = 13
		}
	}
	return speeds, hwVersions
}

func indexByVM(vinfo []tabular.Record) map[string]tabular.Record {
	byVM := make(map[string]tabular.Record, len(vinfo))
	for _, vm := range vinfo {
		if name := vm.Text("VM"); name != "" {
			byVM[name] = vm
		}
	}
	return byVM
}

// placement pulls Host/Cluster/Datacenter/Source for a recommendation,
// falling back to the vInfo row when the sheet row lacks them.
func placement(row tabular.Record, byVM map[string]tabular.Record) (host, cluster, dc, source string) {
	info := byVM[row.Text("VM")]
	pick := func(field, def string) string {
		if row.Has(field) {
			return row.Text(field)
		}
		if info != nil && info.Has(field) {
			return info.Text(field)
		}
		return def
	}
	return pick("Host", ""), pick("Cluster", "Unknown Cluster"), pick("Datacenter", "Unknown DC"), pick("Source", "")
}

func powerstateOf(row tabular.Record, byVM map[string]tabular.Record) string {
	if row.Has("Powerstate") {
		return row.Text("Powerstate")
	}
	if info := byVM[row.Text("VM")]; info != nil {
		return info.Text("Powerstate")
	}
	return ""
}

func checkCPUUnderutilization(vcpu []tabular.Record, byVM map[string]tabular.Record, hostSpeeds map[string]float64, opts RightsizeOptions) []models.Recommendation {
	var recs []models.Recommendation
	for _, vm := range vcpu {
		if powerstateOf(vm, byVM) != "poweredOn" {
			continue
		}
		currentCPU := int(numField(vm, "CPUs"))
		if currentCPU <= 2 {
			continue
		}

		host, cluster, dc, source := placement(vm, byVM)
		hostSpeed := hostSpeeds[host]
		if hostSpeed <= 0 {
			hostSpeed = opts.DefaultHostSpeedMHz
		}
		maxCapacityMHz := float64(currentCPU) * hostSpeed
		if maxCapacityMHz <= 0 {
			continue
		}
		usagePct := numField(vm, "Overall") / maxCapacityMHz * 100
		if usagePct >= opts.LowCPUUsagePct {
			continue
		}

		recommended := currentCPU / 2
		if recommended < 2 {
			recommended = 2
		}
		recs = append(recs, models.Recommendation{
			VM:               vm.Text("VM"),
			Type:             "LOW_CPU_USAGE",
			Severity:         "LOW",
			Reason:           fmt.Sprintf("CPU kullanımı çok düşük (%%%.1f).", usagePct),
			CurrentValue:     fmt.Sprintf("%d vCPU", currentCPU),
			RecommendedValue: fmt.Sprintf("%d vCPU", recommended),
			PotentialSavings: float64(currentCPU - recommended),
			ResourceType:     "vCPU",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkEOLOS(vinfo []tabular.Record) []models.Recommendation {
	var recs []models.Recommendation
	for _, vm := range vinfo {
		osName := vm.Text(osFieldName)
		if osName == "" || !eolOSShortRe.MatchString(osName) {
			continue
		}
		host, cluster, dc, source := placement(vm, nil)
		recs = append(recs, models.Recommendation{
			VM:               vm.Text("VM"),
			Type:             "EOL_OS",
			Severity:         "HIGH",
			Reason:           fmt.Sprintf("Artık desteklenmeyen işletim sistemi: %s", osName),
			CurrentValue:     "EOL",
			RecommendedValue: "Upgrade OS",
			ResourceType:     "Security",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkOldHWVersion(vinfo []tabular.Record, hostHWVersions map[string]int) []models.Recommendation {
	var recs []models.Recommendation
	for _, vm := range vinfo {
		maxHW, ok := hostHWVersions[vm.Text("Host")]
		if !ok {
			maxHW = 13
		}
		m := hwVersionRe.FindString(vm.Text("HW version"))
		if m == "" {
			continue
		}
		currHW, err := strconv.Atoi(m)
		if err != nil || currHW <= 0 || currHW >= maxHW {
			continue
		}
		host, cluster, dc, source := placement(vm, nil)
		recs = append(recs, models.Recommendation{
			VM:               vm.Text("VM"),
			Type:             "OLD_HW_VERSION",
			Severity:         "LOW",
			Reason:           fmt.Sprintf("VM donanım sürümü eski (v%d < v%d).", currHW, maxHW),
			CurrentValue:     fmt.Sprintf("vmx-%d", currHW),
			RecommendedValue: fmt.Sprintf("vmx-%d", maxHW),
			ResourceType:     "Performance",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkVMTools(vtools []tabular.Record, byVM map[string]tabular.Record) []models.Recommendation {
	var recs []models.Recommendation
	for _, vm := range vtools {
		status := vm.Text("Tools")
		if status == "" {
			status = vm.Text("Tools Status")
		}
		if status == "" || badToolsRe.MatchString(status) {
			continue
		}
		if powerstateOf(vm, byVM) != "poweredOn" {
			continue
		}
		host, cluster, dc, source := placement(vm, byVM)
		recs = append(recs, models.Recommendation{
			VM:               vm.Text("VM"),
			Type:             "VM_TOOLS",
			Severity:         "HIGH",
			Reason:           fmt.Sprintf("VMware Tools durumu kritik: %s", status),
			CurrentValue:     "Not OK",
			RecommendedValue: "Up-to-date",
			ResourceType:     "Health",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkOldSnapshots(vsnapshot []tabular.Record, byVM map[string]tabular.Record, opts RightsizeOptions) []models.Recommendation {
	threshold := opts.Now.AddDate(0, 0, -opts.SnapshotOldDays)
	var recs []models.Recommendation
	for _, snap := range vsnapshot {
		taken := parseTime(snap.Text("Date / time"))
		if taken.IsZero() || !taken.Before(threshold) {
			continue
		}
		host, cluster, dc, source := placement(snap, byVM)
		recs = append(recs, models.Recommendation{
			VM:               snap.Text("VM"),
			Type:             "OLD_SNAPSHOT",
			Severity:         "HIGH",
			Reason:           fmt.Sprintf("Snapshot %d günden eski (%s).", opts.SnapshotOldDays, taken.Format("2006-01-02")),
			CurrentValue:     "Old",
			RecommendedValue: "Consolidate",
			ResourceType:     "Performance",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkLegacyNICs(vnetwork []tabular.Record, byVM map[string]tabular.Record) []models.Recommendation {
	var recs []models.Recommendation
	for _, nic := range vnetwork {
		adapter := nic.Text("Adapter")
		if adapter == "" || !legacyNICRe.MatchString(adapter) {
			continue
		}
		host, cluster, dc, source := placement(nic, byVM)
		recs = append(recs, models.Recommendation{
			VM:               nic.Text("VM"),
			Type:             "LEGACY_NIC",
			Severity:         "LOW",
			Reason:           fmt.Sprintf("Eski ağ kartı tipi (%s) performansı düşürür.", adapter),
			CurrentValue:     adapter,
			RecommendedValue: "VMXNET3",
			ResourceType:     "Performance",
			Host:             host,
			Cluster:          cluster,
			Datacenter:       dc,
			Source:           source,
		})
	}
	return recs
}

func checkZombieDisks(vhealth []tabular.Record) []models.Recommendation {
	var recs []models.Recommendation
	for _, row := range vhealth {
		msg := row.Text("Message")
		if msg == "" || !zombieRe.MatchString(msg) {
			continue
		}
		if r := []rune(msg); len(r) > 100 {
			// Rune-wise: the messages are Turkish and a byte slice could cut
			// a character in half.
			msg = string(r[:100]) + "..."
		}
		recs = append(recs, models.Recommendation{
			VM:               "Orphaned Disk",
			Type:             "ZOMBIE_DISK",
			Severity:         "HIGH",
			Reason:           fmt.Sprintf("Sahipsiz disk dosyası bulundu: %s", msg),
			CurrentValue:     "ZOMBIE",
			RecommendedValue: "Delete",
			ResourceType:     "Storage",
			Host:             "-",
			Cluster:          "Unknown Cluster",
			Datacenter:       "Unknown DC",
			Source:           row.Text("Source"),
		})
	}
	return recs
}
