package core

import (
	"sort"
	"strings"

	"rvsalt/models"
	"rvsalt/tabular"
)

// Suffixes that mark a VM name as a replication target.
var replicaPatterns = []string{"_dr", "_replica", "_rep", "-dr", "-replica", "-rep", "_backup", "-backup"}

// baseName strips the first matching replica suffix and lowercases the rest,
// so "web01_DR" and "web01" compare equal.
func baseName(vm string) string {
	name := strings.ToLower(vm)
	for _, pattern := range replicaPatterns {
		if strings.Contains(name, pattern) {
			return strings.ReplaceAll(name, pattern, "")
		}
	}
	return name
}

func hasReplicaPattern(vm string) bool {
	name := strings.ToLower(vm)
	for _, pattern := range replicaPatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// AnalyzeDR matches powered-off replica candidates against powered-on
// production VMs, aggregates the DC-to-DC replication flows and rates each
// DR site's failover capacity.
func AnalyzeDR(vinfo, vhost []tabular.Record) models.DRReport {
	var production, candidates []tabular.Record
	for _, vm := range vinfo {
		switch vm.Text("Powerstate") {
		case "poweredOn":
			production = append(production, vm)
		case "poweredOff":
			candidates = append(candidates, vm)
		}
	}

	pairs, unmatched := matchReplicas(production, candidates)
	flows := dcFlows(pairs)
	sites := drSiteCapacity(pairs, vhost)
	unprotected := unprotectedVMs(production, pairs)

	totalPairs := len(pairs)
	coverage := 0.0
	if len(production) > 0 {
		coverage = round2(float64(totalPairs) / float64(len(production)) * 100)
	}

	if len(pairs) > 100 {
		pairs = pairs[:100]
	}
	if len(unmatched) > 50 {
		unmatched = unmatched[:50]
	}

	return models.DRReport{
		Summary: models.DRSummary{
			TotalProductionVMs: len(production),
			TotalReplicatedVMs: totalPairs,
			CoveragePercent:    coverage,
			UnprotectedVMCount: len(production) - totalPairs,
			DCFlowCount:        len(flows),
			DRSiteCount:        len(sites),
		},
		DCFlows:           flows,
		DRSites:           sites,
		MatchedPairs:      pairs,
		UnmatchedReplicas: unmatched,
		UnprotectedVMs:    unprotected,
	}
}

func matchReplicas(production, candidates []tabular.Record) ([]models.DRPair, []models.UnmatchedReplica) {
	pairs := []models.DRPair{}
	unmatched := []models.UnmatchedReplica{}

	// First production VM per base name wins, matching insertion order.
	prodByBase := make(map[string]tabular.Record, len(production))
	for _, vm := range production {
		base := baseName(vm.Text("VM"))
		if _, seen := prodByBase[base]; !seen {
			prodByBase[base] = vm
		}
	}

	for _, replica := range candidates {
		if prod, ok := prodByBase[baseName(replica.Text("VM"))]; ok {
			if replica.Text("Datacenter") != prod.Text("Datacenter") {
				pairs = append(pairs, makePair(prod, replica))
				continue
			}
		}

		// Same name deployed in a different datacenter also counts.
		matched := false
		for _, prod := range production {
			if strings.EqualFold(prod.Text("VM"), replica.Text("VM")) &&
				prod.Text("Datacenter") != replica.Text("Datacenter") {
				pairs = append(pairs, makePair(prod, replica))
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if hasReplicaPattern(replica.Text("VM")) {
			unmatched = append(unmatched, models.UnmatchedReplica{
				VM:         replica.Text("VM"),
				Datacenter: replica.Text("Datacenter"),
				Cluster:    replica.Text("Cluster"),
				VCPU:       int(numField(replica, "CPUs")),
				MemoryGB:   round2(numField(replica, "Memory") / 1024),
				DiskGB:     round2(numField(replica, "Total disk capacity MiB") / 1024),
			})
		}
	}
	return pairs, unmatched
}

func makePair(prod, replica tabular.Record) models.DRPair {
	return models.DRPair{
		ProductionVM:      prod.Text("VM"),
		ProductionDC:      prod.Text("Datacenter"),
		ProductionCluster: prod.Text("Cluster"),
		ProductionHost:    prod.Text("Host"),
		ReplicaVM:         replica.Text("VM"),
		ReplicaDC:         replica.Text("Datacenter"),
		ReplicaCluster:    replica.Text("Cluster"),
		ReplicaHost:       replica.Text("Host"),
		VCPU:              int(numField(prod, "CPUs")),
		MemoryGB:          round2(numField(prod, "Memory") / 1024),
		DiskGB:            round2(numField(prod, "Total disk capacity MiB") / 1024),
		OS:                prod.Text(osFieldName),
		Source:            prod.Text("Source"),
	}
}

func dcFlows(pairs []models.DRPair) []models.DCFlow {
	byKey := map[string]*models.DCFlow{}
	var order []string
	for _, pair := range pairs {
		key := pair.ProductionDC + " -> " + pair.ReplicaDC
		flow, ok := byKey[key]
		if !ok {
			flow = &models.DCFlow{SourceDC: pair.ProductionDC, TargetDC: pair.ReplicaDC}
			byKey[key] = flow
			order = append(order, key)
		}
		flow.VMCount++
		flow.TotalVCPU += pair.VCPU
		flow.TotalMemoryGB = round2(flow.TotalMemoryGB + pair.MemoryGB)
		flow.TotalDiskGB = round2(flow.TotalDiskGB + pair.DiskGB)
	}

	flows := make([]models.DCFlow, 0, len(order))
	for _, key := range order {
		flows = append(flows, *byKey[key])
	}
	return flows
}

func drSiteCapacity(pairs []models.DRPair, vhost []tabular.Record) []models.DRSite {
	drDCs := map[string]bool{}
	for _, pair := range pairs {
		drDCs[pair.ReplicaDC] = true
	}

	dcs := make([]string, 0, len(drDCs))
	for dc := range drDCs {
		dcs = append(dcs, dc)
	}
	sort.Strings(dcs)

	sites := []models.DRSite{}
	for _, dc := range dcs {
		var hostCount int
		var totalCores, totalMemoryMB, cpuUsageSum, memUsageSum float64
		for _, host := range vhost {
			if host.Text("Datacenter") != dc {
				continue
			}
			hostCount++
			totalCores += numField(host, "# Cores")
			totalMemoryMB += numField(host, "# Memory")
			cpuUsageSum += numField(host, "CPU usage %")
			memUsageSum += numField(host, "Memory usage %")
		}
		if hostCount == 0 {
			continue
		}

		totalMemoryGB := round2(totalMemoryMB / 1024)
		avgCPUUsage := round2(cpuUsageSum / float64(hostCount))
		avgMemUsage := round2(memUsageSum / float64(hostCount))

		var requiredVCPU int
		var requiredMemGB, requiredDiskGB float64
		var vmCount int
		for _, pair := range pairs {
			if pair.ReplicaDC != dc {
				continue
			}
			vmCount++
			requiredVCPU += pair.VCPU
			requiredMemGB += pair.MemoryGB
			requiredDiskGB += pair.DiskGB
		}

		cpuRatio, memRatio := 0.0, 0.0
		if totalCores > 0 {
			cpuRatio = float64(requiredVCPU) / totalCores * 100
		}
		if totalMemoryGB > 0 {
			memRatio = requiredMemGB / totalMemoryGB * 100
		}

		cpuReady, memReady := 100.0, 100.0
		if cpuRatio > 0 {
			cpuReady = minFloat(100, (100-avgCPUUsage)/cpuRatio*100)
		}
		if memRatio > 0 {
			memReady = minFloat(100, (100-avgMemUsage)/memRatio*100)
		}
		readiness := round2((cpuReady + memReady) / 2)

		sites = append(sites, models.DRSite{
			Datacenter:        dc,
			HostCount:         hostCount,
			TotalCores:        int(totalCores),
			TotalMemoryGB:     totalMemoryGB,
			CurrentCPUUsage:   avgCPUUsage,
			CurrentMemUsage:   avgMemUsage,
			ReplicatedVMCount: vmCount,
			RequiredVCPU:      requiredVCPU,
			RequiredMemoryGB:  round2(requiredMemGB),
			RequiredDiskGB:    round2(requiredDiskGB),
			CPUCapacityRatio:  round2(cpuRatio),
			MemCapacityRatio:  round2(memRatio),
			ReadinessScore:    readiness,
			FailoverFeasible:  readiness >= 80,
		})
	}
	return sites
}

// unprotectedVMs ranks production VMs without a replica by the resources a
// failover would have to cover and keeps the heaviest twenty.
func unprotectedVMs(production []tabular.Record, pairs []models.DRPair) []models.UnmatchedReplica {
	protected := map[string]bool{}
	for _, pair := range pairs {
		protected[pair.ProductionVM] = true
	}

	var critical []models.UnmatchedReplica
	for _, vm := range production {
		if protected[vm.Text("VM")] {
			continue
		}
		cpus := numField(vm, "CPUs")
		memMB := numField(vm, "Memory")
		diskMiB := numField(vm, "Total disk capacity MiB")
		critical = append(critical, models.UnmatchedReplica{
			VM:         vm.Text("VM"),
			Datacenter: vm.Text("Datacenter"),
			Cluster:    vm.Text("Cluster"),
			VCPU:       int(cpus),
			MemoryGB:   round2(memMB / 1024),
			DiskGB:     round2(diskMiB / 1024),
			OS:         vm.Text(osFieldName),
			Source:     vm.Text("Source"),
			Score:      round2(cpus*2 + memMB/1024 + diskMiB/1024),
		})
	}

	sort.SliceStable(critical, func(i, j int) bool { return critical[i].Score > critical[j].Score })
	if len(critical) > 20 {
		critical = critical[:20]
	}
	return critical
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
