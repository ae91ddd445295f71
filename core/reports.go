package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rvsalt/models"
	"rvsalt/tabular"
)

var (
	// "[datastore] folder/file.vmdk" as health findings render disk paths.
	vmdkPathRe = regexp.MustCompile(`(?i)\[(.*?)\]\s+(.*?)/(.*?\.vmdk)`)
	vmdkFileRe = regexp.MustCompile(`(?i)(.*?\.vmdk)`)
)

// AnalyzeZombieDisks resolves the orphaned disk files reported by the health
// sheet into datastore, folder and filename, with the owning cluster looked
// up from the datastore sheet.
func AnalyzeZombieDisks(vhealth, vdatastore []tabular.Record) models.ZombieDiskReport {
	report := models.ZombieDiskReport{Disks: []models.ZombieDisk{}}

	clusterByDS := map[string]string{}
	for _, ds := range vdatastore {
		name := ds.Text("Name")
		if name == "" {
			continue
		}
		if _, seen := clusterByDS[name]; !seen {
			clusterByDS[name] = strings.TrimSpace(ds.Text("Cluster name"))
		}
	}

	vms := map[string]bool{}
	for _, row := range vhealth {
		message := row.Text("Message")
		if message == "" || !zombieRe.MatchString(message) {
			continue
		}

		datastore, folder, filename := "Unknown", "Unknown", ""
		fullPath := message

		if name := row.Text("Name"); name != "" {
			if m := vmdkPathRe.FindStringSubmatch(name); m != nil {
				datastore = strings.TrimSpace(m[1])
				folder = strings.TrimSpace(m[2])
				filename = strings.TrimSpace(m[3])
				fullPath = name
			}
		}
		if datastore == "Unknown" {
			if m := vmdkPathRe.FindStringSubmatch(message); m != nil {
				datastore = strings.TrimSpace(m[1])
				folder = strings.TrimSpace(m[2])
				filename = strings.TrimSpace(m[3])
				fullPath = fmt.Sprintf("[%s] %s/%s", datastore, folder, filename)
			} else if m := vmdkFileRe.FindStringSubmatch(message); m != nil {
				filename = strings.TrimSpace(m[1])
				fullPath = filename
			}
		}

		cluster := "-"
		if datastore != "Unknown" {
			if c := clusterByDS[datastore]; c != "" {
				cluster = c
			}
		}

		reason := "Disk dosyası datastore'da bulundu ancak artık hiçbir VM'e bağlı değil"
		if strings.Contains(strings.ToLower(message), "not attached") {
			reason = "Disk hiçbir VM'e bağlı değil (orphaned)"
		} else if folder != "Unknown" {
			reason = fmt.Sprintf("VM klasörü '%s' - VM silinmiş disk kalmış", folder)
		}

		if filename == "" {
			filename = "Bilinmiyor"
		}
		report.Disks = append(report.Disks, models.ZombieDisk{
			VM:        folder,
			Datastore: datastore,
			Cluster:   cluster,
			Filename:  filename,
			FullPath:  fullPath,
			Reason:    reason,
			Source:    row.Text("Source"),
		})
		if folder != "Unknown" {
			vms[folder] = true
		}
	}

	report.DiskCount = len(report.Disks)
	report.VMCount = len(vms)
	return report
}

// BuildResourceUsage aggregates VM load per cluster and per host, split by
// power state. Memory and disk totals GiB, rounded.
func BuildResourceUsage(vinfo []tabular.Record) models.ResourceUsageReport {
	type usageKey struct{ source, cluster, host string }

	accumulate := func(withHost bool) []models.ResourceUsageRow {
		acc := map[usageKey]*models.ResourceUsageRow{}
		var order []usageKey
		for _, vm := range vinfo {
			key := usageKey{source: vm.Text("Source"), cluster: vm.Text("Cluster")}
			if withHost {
				key.host = vm.Text("Host")
			}
			row, ok := acc[key]
			if !ok {
				row = &models.ResourceUsageRow{Source: key.source, Cluster: key.cluster, Host: key.host}
				acc[key] = row
				order = append(order, key)
			}

			cpus := int(numField(vm, "CPUs"))
			mem := numField(vm, "Memory")
			disk := numField(vm, "Total disk capacity MiB")
			switch vm.Text("Powerstate") {
			case "poweredOn":
				row.VMsOn++
				row.CPUOn += cpus
				row.RAMOnGB += mem
				row.DiskOnGB += disk
			case "poweredOff":
				row.VMsOff++
				row.CPUOff += cpus
				row.RAMOffGB += mem
				row.DiskOffGB += disk
			}
		}

		sort.Slice(order, func(i, j int) bool {
			a, b := order[i], order[j]
			if a.source != b.source {
				return a.source < b.source
			}
			if a.cluster != b.cluster {
				return a.cluster < b.cluster
			}
			return a.host < b.host
		})
		rows := make([]models.ResourceUsageRow, 0, len(order))
		for _, key := range order {
			row := acc[key]
			row.RAMOnGB = round2(row.RAMOnGB / 1024)
			row.RAMOffGB = round2(row.RAMOffGB / 1024)
			row.DiskOnGB = round2(row.DiskOnGB / 1024)
			row.DiskOffGB = round2(row.DiskOffGB / 1024)
			rows = append(rows, *row)
		}
		return rows
	}

	return models.ResourceUsageReport{
		ByCluster: accumulate(false),
		ByHost:    accumulate(true),
	}
}

// BuildOSDistribution counts VMs, vCPUs and memory per guest OS, most
// common OS first.
func BuildOSDistribution(vinfo []tabular.Record) []models.OSDistributionRow {
	acc := map[string]*models.OSDistributionRow{}
	var names []string
	for _, vm := range vinfo {
		osName := vm.Text(osFieldName)
		if osName == "" {
			continue
		}
		row, ok := acc[osName]
		if !ok {
			row = &models.OSDistributionRow{OS: osName}
			acc[osName] = row
			names = append(names, osName)
		}
		row.VMCount++
		row.TotalCPUs += int(numField(vm, "CPUs"))
		row.TotalMemory += numField(vm, "Memory")
	}

	sort.Strings(names)
	rows := make([]models.OSDistributionRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, *acc[name])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].VMCount > rows[j].VMCount })
	if rows == nil {
		rows = []models.OSDistributionRow{}
	}
	return rows
}

// reservationField finds the sheet's reservation column: the exports title
// it differently across versions, but it always contains "Reservation" and
// never "Limit".
func reservationField(rows []tabular.Record) string {
	for _, row := range rows {
		for _, k := range row.Keys() {
			if strings.Contains(k, "Reservation") && !strings.Contains(k, "Limit") {
				return k
			}
		}
	}
	return ""
}

// AnalyzeReservations lists every VM holding a CPU or memory reservation,
// with its placement pulled from the info sheet.
func AnalyzeReservations(vinfo, vcpu, vmemory []tabular.Record) []models.ReservedVM {
	type resKey struct{ vm, id string }
	acc := map[resKey]*models.ReservedVM{}
	var order []resKey

	ensure := func(row tabular.Record) *models.ReservedVM {
		key := resKey{vm: row.Text("VM"), id: row.Text("VM ID")}
		r, ok := acc[key]
		if !ok {
			r = &models.ReservedVM{VM: key.vm, VMID: key.id, Source: row.Text("Source")}
			acc[key] = r
			order = append(order, key)
		}
		return r
	}
	limitOr := func(row tabular.Record) string {
		if row.Has("Limit") {
			return row.Text("Limit")
		}
		return "Unlimited"
	}

	if field := reservationField(vcpu); field != "" {
		for _, row := range vcpu {
			if val := numField(row, field); val > 0 {
				r := ensure(row)
				r.CPUReservedMHz = val
				r.CPULimit = limitOr(row)
			}
		}
	}
	if field := reservationField(vmemory); field != "" {
		for _, row := range vmemory {
			if val := numField(row, field); val > 0 {
				r := ensure(row)
				r.MemReservedMB = val
				r.MemLimit = limitOr(row)
			}
		}
	}

	infoByVM := map[string]tabular.Record{}
	for _, vm := range vinfo {
		key := vm.Text("VM") + "\x00" + vm.Text("Source")
		if _, seen := infoByVM[key]; !seen {
			infoByVM[key] = vm
		}
	}

	result := make([]models.ReservedVM, 0, len(order))
	for _, key := range order {
		r := acc[key]
		if info, ok := infoByVM[r.VM+"\x00"+r.Source]; ok {
			r.Powerstate = info.Text("Powerstate")
			r.Cluster = info.Text("Cluster")
			r.Host = info.Text("Host")
		} else {
			r.Powerstate = "Unknown"
			r.Cluster = "-"
			r.Host = "-"
		}
		result = append(result, *r)
	}
	return result
}

// AnalyzeDiskWaste flags thick-provisioned disks that likely waste space:
// sizable disks on powered-off VMs and very large thick disks anywhere. The
// estimate weights the former at 70% and the latter at 30% of capacity; a
// disk matching both is counted in both buckets.
func AnalyzeDiskWaste(vdisk, vinfo []tabular.Record) models.DiskWasteReport {
	report := models.DiskWasteReport{Disks: []models.WasteDisk{}}

	infoByVM := map[string]tabular.Record{}
	for _, vm := range vinfo {
		name := vm.Text("VM")
		if _, seen := infoByVM[name]; !seen {
			infoByVM[name] = vm
		}
	}

	add := func(disk tabular.Record, wasteType string, capacityGB, factor float64, source string) {
		report.Disks = append(report.Disks, models.WasteDisk{
			VM:               disk.Text("VM"),
			DiskName:         disk.Text("Disk"),
			WasteType:        wasteType,
			CapacityGB:       capacityGB,
			EstimatedWasteGB: capacityGB * factor,
			Thin:             false,
			Source:           source,
		})
		report.TotalWastedGB += capacityGB * factor
	}

	for _, disk := range vdisk {
		// Only disks explicitly marked thick count; an absent Thin cell
		// stays out of the waste estimate.
		if !disk.Has("Thin") || boolField(disk, "Thin") {
			continue
		}
		capacity := numField(disk, "Capacity MiB")
		capacityGB := round2(capacity / 1024)

		powerstate, source := "", disk.Text("Source")
		if info, ok := infoByVM[disk.Text("VM")]; ok {
			powerstate = info.Text("Powerstate")
			if s := info.Text("Source"); s != "" {
				source = s
			}
		}

		if powerstate == "poweredOff" && capacity > 10240 {
			add(disk, "THICK_POWERED_OFF", capacityGB, 0.7, source)
		}
		if capacity > 102400 {
			add(disk, "THICK_LARGE", capacityGB, 0.3, source)
		}
	}

	report.DiskCount = len(report.Disks)
	report.TotalWastedGB = round2(report.TotalWastedGB)
	return report
}
