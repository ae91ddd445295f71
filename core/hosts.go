package core

import (
	"rvsalt/models"
	"rvsalt/tabular"
)

// BuildHostMetrics derives per-host capacity figures from the vHost sheet.
func BuildHostMetrics(vhost []tabular.Record) map[string]models.HostMetrics {
	metrics := make(map[string]models.HostMetrics, len(vhost))
	for _, host := range vhost {
		name := host.Text("Host")
		if name == "" {
			name = "Unknown"
		}

		cores := int(numField(host, "# Cores"))
		if cores <= 0 {
			cores = int(numField(host, "# CPU") * numField(host, "Cores per CPU"))
		}
		physRAMGB := round2(numField(host, "# Memory") / 1024)
		vcpus := int(numField(host, "# vCPUs"))
		vramGB := round2(numField(host, "vRAM") / 1024)

		coreRatio, ramRatio := 0.0, 0.0
		if cores > 0 {
			coreRatio = round2(float64(vcpus) / float64(cores))
		}
		if physRAMGB > 0 {
			ramRatio = round2(vramGB / physRAMGB)
		}

		metrics[name] = models.HostMetrics{
			Host:           name,
			PhysicalCores:  cores,
			PhysicalRAMGB:  physRAMGB,
			CPUSockets:     int(numField(host, "# CPU")),
			CoresPerSocket: int(numField(host, "Cores per CPU")),
			CPUModel:       host.Text("CPU Model"),
			ESXiVersion:    host.Text("ESX Version"),
			Datacenter:     host.Text("Datacenter"),
			Cluster:        host.Text("Cluster"),
			Source:         host.Text("Source"),
			CPUUsagePct:    round2(numField(host, "CPU usage %")),
			RAMUsagePct:    round2(numField(host, "Memory usage %")),
			VCPUCount:      vcpus,
			VRAMGB:         vramGB,
			VCPUPCoreRatio: coreRatio,
			VRAMPRAMRatio:  ramRatio,
		}
	}
	return metrics
}

// FilterHosts narrows the vHost sheet by name search and the datacenter and
// cluster dropdowns before the hierarchy is built.
func FilterHosts(vhost []tabular.Record, f models.HostFilters) []tabular.Record {
	out := tabular.Apply(vhost, tabular.Query{
		Search:       f.FilterSearchText,
		SearchFields: []string{"Host"},
	})
	discrete := map[string]string{}
	if f.FilterDatacenter != "" {
		discrete["Datacenter"] = f.FilterDatacenter
	}
	if f.FilterCluster != "" {
		discrete["Cluster"] = f.FilterCluster
	}
	if len(discrete) > 0 {
		out = tabular.Apply(out, tabular.Query{Discrete: discrete})
	}
	return out
}

func fieldOr(r tabular.Record, field, def string) string {
	if v := r.Text(field); v != "" {
		return v
	}
	return def
}

// BuildHierarchy assembles the source → datacenter → cluster → host → VM
// tree with capacity aggregates at every level. Hosts without a cluster go
// under "Standalone Hosts".
func BuildHierarchy(vinfo, vhost []tabular.Record, metrics map[string]models.HostMetrics) models.Hierarchy {
	h := models.Hierarchy{}

	ensureHost := func(source, dc, cluster, hostName string) (*models.ClusterGroup, *models.HostGroup) {
		src, ok := h[source]
		if !ok {
			src = &models.SourceHierarchy{Datacenters: map[string]*models.DatacenterGroup{}}
			h[source] = src
		}
		dcg, ok := src.Datacenters[dc]
		if !ok {
			dcg = &models.DatacenterGroup{Clusters: map[string]*models.ClusterGroup{}}
			src.Datacenters[dc] = dcg
		}
		cl, ok := dcg.Clusters[cluster]
		if !ok {
			cl = &models.ClusterGroup{Hosts: map[string]*models.HostGroup{}}
			dcg.Clusters[cluster] = cl
		}
		hg, ok := cl.Hosts[hostName]
		if !ok {
			hm := metrics[hostName]
			if hm.Host == "" {
				hm.Host = hostName
				hm.Source = source
			}
			hg = &models.HostGroup{HostMetrics: hm, VMs: []models.HierarchyVM{}}
			cl.Hosts[hostName] = hg
			cl.TotalPhysicalCores += hm.PhysicalCores
			cl.TotalPhysicalRAMGB = round2(cl.TotalPhysicalRAMGB + hm.PhysicalRAMGB)
		}
		return cl, hg
	}

	for _, host := range vhost {
		cluster := host.Text("Cluster")
		if cluster == "" {
			cluster = "Standalone Hosts"
		}
		ensureHost(fieldOr(host, "Source", "Unknown"),
			fieldOr(host, "Datacenter", "Unknown Datacenter"),
			cluster, fieldOr(host, "Host", "Unknown"))
	}

	for _, vm := range vinfo {
		source := fieldOr(vm, "Source", "Unknown")
		dc := fieldOr(vm, "Datacenter", "Unknown Datacenter")
		cluster := vm.Text("Cluster")
		if cluster == "" {
			cluster = "Standalone Hosts"
		}
		hostName := fieldOr(vm, "Host", "Unknown Host")

		cl, hg := ensureHost(source, dc, cluster, hostName)
		dcg := h[source].Datacenters[dc]

		vcpu := int(numField(vm, "CPUs"))
		ramGB := round2(numField(vm, "Memory") / 1024)
		poweredOn := vm.Text("Powerstate") == "poweredOn"

		hg.VMs = append(hg.VMs, models.HierarchyVM{
			Name:       vm.Text("VM"),
			Powerstate: fieldOr(vm, "Powerstate", "poweredOff"),
			VCPU:       vcpu,
			RAMGB:      ramGB,
			DiskGB:     round2(numField(vm, "Total disk capacity MiB") / 1024),
			OS:         vm.Text(osFieldName),
		})

		hg.TotalVMs++
		hg.TotalVCPU += vcpu
		hg.TotalRAMGB = round2(hg.TotalRAMGB + ramGB)
		cl.TotalVMs++
		cl.TotalVCPU += vcpu
		cl.TotalRAMGB = round2(cl.TotalRAMGB + ramGB)
		dcg.TotalVMs++
		dcg.TotalVCPU += vcpu
		dcg.TotalRAMGB = round2(dcg.TotalRAMGB + ramGB)
		if poweredOn {
			hg.PoweredOn++
			cl.PoweredOn++
			dcg.PoweredOn++
		}
	}

	aggregate(h)
	return h
}

// aggregate fills the usage averages and ratios that depend on the finished
// host sets.
func aggregate(h models.Hierarchy) {
	for _, src := range h {
		for _, dcg := range src.Datacenters {
			var dcCPUSum, dcRAMSum float64
			dcHostCount := 0

			for _, cl := range dcg.Clusters {
				cl.HostCount = len(cl.Hosts)
				if cl.HostCount == 0 {
					continue
				}
				var cpuSum, ramSum, vramSum float64
				vcpuSum := 0
				for _, hg := range cl.Hosts {
					cpuSum += hg.CPUUsagePct
					ramSum += hg.RAMUsagePct
					vcpuSum += hg.VCPUCount
					vramSum += hg.VRAMGB
				}
				cl.AvgCPUUsagePct = round2(cpuSum / float64(cl.HostCount))
				cl.AvgRAMUsagePct = round2(ramSum / float64(cl.HostCount))
				if cl.TotalPhysicalCores > 0 {
					cl.VCPUPCoreRatio = round2(float64(vcpuSum) / float64(cl.TotalPhysicalCores))
				}
				if cl.TotalPhysicalRAMGB > 0 {
					cl.VRAMPRAMRatio = round2(vramSum / cl.TotalPhysicalRAMGB)
				}

				dcCPUSum += cpuSum
				dcRAMSum += ramSum
				dcHostCount += cl.HostCount
				dcg.TotalPhysicalCores += cl.TotalPhysicalCores
				dcg.TotalPhysicalRAMGB = round2(dcg.TotalPhysicalRAMGB + cl.TotalPhysicalRAMGB)
			}

			dcg.ClusterCount = len(dcg.Clusters)
			dcg.HostCount = dcHostCount
			if dcHostCount > 0 {
				dcg.AvgCPUUsagePct = round2(dcCPUSum / float64(dcHostCount))
				dcg.AvgRAMUsagePct = round2(dcRAMSum / float64(dcHostCount))
			}
		}
	}
}

// BuildInventoryTree nests bare VM entries by source/datacenter/cluster/host.
func BuildInventoryTree(vinfo []tabular.Record) models.InventoryTree {
	tree := models.InventoryTree{}
	for _, vm := range vinfo {
		source := fieldOr(vm, "Source", "Unknown")
		dc := fieldOr(vm, "Datacenter", "Unknown Datacenter")
		cluster := fieldOr(vm, "Cluster", "Unknown Cluster")
		host := fieldOr(vm, "Host", "Unknown Host")

		if tree[source] == nil {
			tree[source] = map[string]map[string]map[string][]models.InventoryVM{}
		}
		if tree[source][dc] == nil {
			tree[source][dc] = map[string]map[string][]models.InventoryVM{}
		}
		if tree[source][dc][cluster] == nil {
			tree[source][dc][cluster] = map[string][]models.InventoryVM{}
		}
		tree[source][dc][cluster][host] = append(tree[source][dc][cluster][host], models.InventoryVM{
			Name:       vm.Text("VM"),
			ID:         vm.Text("VM ID"),
			PowerState: fieldOr(vm, "Powerstate", "poweredOff"),
		})
	}
	return tree
}
