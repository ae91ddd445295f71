package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rvsalt/models"
	"rvsalt/tabular"
)

var eolOSPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Windows Server 2003`),
	regexp.MustCompile(`(?i)Windows Server 2008`),
	regexp.MustCompile(`(?i)Windows Server 2012`),
	regexp.MustCompile(`(?i)CentOS 7`),
	regexp.MustCompile(`(?i)CentOS 6`),
	regexp.MustCompile(`(?i)CentOS 5`),
	regexp.MustCompile(`(?i)Red Hat Enterprise Linux [456]`),
	regexp.MustCompile(`(?i)Ubuntu 1[0246]\.`),
	regexp.MustCompile(`(?i)Debian [6789]`),
}

var biosYearRe = regexp.MustCompile(`(19|20)\d{2}`)

// osFieldName is the verbose column RVTools-style exports use for the guest OS.
const osFieldName = "OS according to the configuration file"

func isEOLOS(osName string) bool {
	for _, re := range eolOSPatterns {
		if re.MatchString(osName) {
			return true
		}
	}
	return false
}

// AnalyzeRisks scans VMs, hosts and health messages for infrastructure
// risks: end-of-life guest OSes, outdated hypervisors, aging firmware and
// anything the export's own health sheet reported.
func AnalyzeRisks(vinfo, vhost, vhealth []tabular.Record, minBIOSYear int) models.RiskReport {
	report := models.RiskReport{Risks: []models.Risk{}}

	for _, vm := range vinfo {
		osName := vm.Text(osFieldName)
		if osName == "" || !isEOLOS(osName) {
			continue
		}
		report.Risks = append(report.Risks, models.Risk{
			Target:         vm.Text("VM"),
			Type:           "OS_EOL",
			Severity:       "Critical",
			Category:       "Software",
			Description:    fmt.Sprintf("VM '%s' üzerinde eski bir OS (%s) çalışıyor.", vm.Text("VM"), osName),
			Recommendation: "İşletim sistemini desteklenen bir sürüme yükseltin.",
			Source:         vm.Text("Source"),
		})
	}

	for _, host := range vhost {
		esxVer := host.Text("ESX Version")
		if strings.Contains(esxVer, "6.") || strings.Contains(esxVer, "5.") {
			report.Risks = append(report.Risks, models.Risk{
				Target:         host.Text("Host"),
				Type:           "ESXI_OUTDATED",
				Severity:       "High",
				Category:       "Hypervisor",
				Description:    fmt.Sprintf("Host '%s' üzerinde eski ESXi sürümü (%s) yüklü.", host.Text("Host"), esxVer),
				Recommendation: "ESXi 7.0 veya 8.0 sürümüne yükseltme planlayın.",
				Source:         host.Text("Source"),
			})
		}

		biosDate := host.Text("BIOS Date")
		if m := biosYearRe.FindString(biosDate); m != "" {
			if year, err := strconv.Atoi(m); err == nil && year < minBIOSYear {
				report.Risks = append(report.Risks, models.Risk{
					Target:         host.Text("Host"),
					Type:           "BIOS_OUTDATED",
					Severity:       "Medium",
					Category:       "Hardware",
					Description:    fmt.Sprintf("BIOS tarihi (%s) 3 yıldan eski.", biosDate),
					Recommendation: "En güncel BIOS/Firmware sürümünü vendor sitesinden kontrol edip uygulayın.",
					Source:         host.Text("Source"),
				})
			}
		}
	}

	for _, h := range vhealth {
		severity := "Medium"
		if strings.EqualFold(h.Text("Message type"), "critical") {
			severity = "High"
		}
		target := h.Text("Name")
		if target == "" {
			target = "Global"
		}
		report.Risks = append(report.Risks, models.Risk{
			Target:         target,
			Type:           "RV_HEALTH",
			Severity:       severity,
			Category:       "Operation",
			Description:    h.Text("Message"),
			Recommendation: "Health tablosundaki detayları inceleyin.",
			Source:         h.Text("Source"),
		})
	}

	for _, r := range report.Risks {
		switch r.Severity {
		case "Critical":
			report.Stats.CriticalCount++
		case "High":
			report.Stats.HighCount++
		case "Medium":
			report.Stats.MediumCount++
		default:
			report.Stats.LowCount++
		}
	}
	return report
}
