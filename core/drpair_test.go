package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvsalt/tabular"
)

func TestBaseName(t *testing.T) {
	assert.Equal(t, "web01", baseName("web01_DR"))
	assert.Equal(t, "web01", baseName("WEB01-replica"))
	assert.Equal(t, "db01", baseName("db01_backup"))
	assert.Equal(t, "app01", baseName("app01"))
}

func drVM(name, power, dc, cluster, host string) tabular.Record {
	return tabular.Record{
		"VM": name, "Powerstate": power, "Datacenter": dc, "Cluster": cluster,
		"Host": host, "CPUs": 4.0, "Memory": 8192.0, "Total disk capacity MiB": 102400.0,
		osFieldName: "Ubuntu 22.04", "Source": "ist",
	}
}

func TestAnalyzeDRMatchesSuffixedReplicas(t *testing.T) {
	vinfo := []tabular.Record{
		drVM("web01", "poweredOn", "IST", "prod", "esx01"),
		drVM("web01_dr", "poweredOff", "ANK", "dr", "esx11"),
	}

	report := AnalyzeDR(vinfo, nil)
	require.Len(t, report.MatchedPairs, 1)
	pair := report.MatchedPairs[0]
	assert.Equal(t, "web01", pair.ProductionVM)
	assert.Equal(t, "web01_dr", pair.ReplicaVM)
	assert.Equal(t, "IST", pair.ProductionDC)
	assert.Equal(t, "ANK", pair.ReplicaDC)
	assert.Equal(t, 4, pair.VCPU)
	assert.InDelta(t, 8.0, pair.MemoryGB, 0.01)
	assert.InDelta(t, 100.0, pair.DiskGB, 0.01)

	assert.Equal(t, 1, report.Summary.TotalProductionVMs)
	assert.Equal(t, 1, report.Summary.TotalReplicatedVMs)
	assert.InDelta(t, 100.0, report.Summary.CoveragePercent, 0.01)
	assert.Empty(t, report.UnprotectedVMs)
}

func TestAnalyzeDRSameDCSuffixNotAPair(t *testing.T) {
	// A powered-off copy in the same datacenter gives no DR protection.
	vinfo := []tabular.Record{
		drVM("web01", "poweredOn", "IST", "prod", "esx01"),
		drVM("web01_dr", "poweredOff", "IST", "prod", "esx02"),
	}
	report := AnalyzeDR(vinfo, nil)
	assert.Empty(t, report.MatchedPairs)
	require.Len(t, report.UnmatchedReplicas, 1)
	assert.Equal(t, "web01_dr", report.UnmatchedReplicas[0].VM)
}

func TestAnalyzeDRSameNameCrossDC(t *testing.T) {
	vinfo := []tabular.Record{
		drVM("app01", "poweredOn", "IST", "prod", "esx01"),
		drVM("app01", "poweredOff", "ANK", "dr", "esx11"),
	}
	report := AnalyzeDR(vinfo, nil)
	require.Len(t, report.MatchedPairs, 1)
	assert.Equal(t, "ANK", report.MatchedPairs[0].ReplicaDC)
}

func TestAnalyzeDRPlainPoweredOffIgnored(t *testing.T) {
	vinfo := []tabular.Record{
		drVM("web01", "poweredOn", "IST", "prod", "esx01"),
		drVM("scratch-vm", "poweredOff", "ANK", "lab", "esx11"),
	}
	report := AnalyzeDR(vinfo, nil)
	assert.Empty(t, report.MatchedPairs)
	assert.Empty(t, report.UnmatchedReplicas, "no replica suffix, not even unmatched")
}

func TestAnalyzeDRFlowsAggregate(t *testing.T) {
	vinfo := []tabular.Record{
		drVM("a", "poweredOn", "IST", "prod", "esx01"),
		drVM("a_dr", "poweredOff", "ANK", "dr", "esx11"),
		drVM("b", "poweredOn", "IST", "prod", "esx02"),
		drVM("b_dr", "poweredOff", "ANK", "dr", "esx12"),
		drVM("c", "poweredOn", "IST", "prod", "esx03"),
		drVM("c_dr", "poweredOff", "IZM", "dr2", "esx21"),
	}

	report := AnalyzeDR(vinfo, nil)
	require.Len(t, report.DCFlows, 2)

	first := report.DCFlows[0]
	assert.Equal(t, "IST", first.SourceDC)
	assert.Equal(t, "ANK", first.TargetDC)
	assert.Equal(t, 2, first.VMCount)
	assert.Equal(t, 8, first.TotalVCPU)
	assert.InDelta(t, 16.0, first.TotalMemoryGB, 0.01)

	assert.Equal(t, "IZM", report.DCFlows[1].TargetDC)
	assert.Equal(t, 2, report.Summary.DCFlowCount)
}

func TestAnalyzeDRUnprotectedRankedByScore(t *testing.T) {
	big := drVM("big", "poweredOn", "IST", "prod", "esx01")
	big["CPUs"] = 32.0
	big["Memory"] = 131072.0
	small := drVM("small", "poweredOn", "IST", "prod", "esx01")
	small["CPUs"] = 1.0
	small["Memory"] = 1024.0

	report := AnalyzeDR([]tabular.Record{small, big}, nil)
	require.Len(t, report.UnprotectedVMs, 2)
	assert.Equal(t, "big", report.UnprotectedVMs[0].VM, "heaviest VM ranks first")
	assert.Greater(t, report.UnprotectedVMs[0].Score, report.UnprotectedVMs[1].Score)
	assert.Equal(t, 2, report.Summary.UnprotectedVMCount)
}

func TestAnalyzeDRSiteReadiness(t *testing.T) {
	vinfo := []tabular.Record{
		drVM("a", "poweredOn", "IST", "prod", "esx01"),
		drVM("a_dr", "poweredOff", "ANK", "dr", "esx11"),
	}
	vhost := []tabular.Record{
		{"Host": "esx11", "Datacenter": "ANK", "# Cores": 64.0, "# Memory": 524288.0,
			"CPU usage %": 20.0, "Memory usage %": 30.0},
	}

	report := AnalyzeDR(vinfo, vhost)
	require.Len(t, report.DRSites, 1)
	site := report.DRSites[0]
	assert.Equal(t, "ANK", site.Datacenter)
	assert.Equal(t, 1, site.HostCount)
	assert.Equal(t, 64, site.TotalCores)
	assert.InDelta(t, 512.0, site.TotalMemoryGB, 0.01)
	assert.Equal(t, 4, site.RequiredVCPU)
	assert.True(t, site.FailoverFeasible)
	assert.InDelta(t, 100.0, site.ReadinessScore, 0.01)
}
