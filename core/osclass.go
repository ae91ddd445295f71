package core

import "strings"

var desktopPatterns = []string{
	"windows 7", "windows 8", "windows 10", "windows 11",
	"windows xp", "windows vista", "macos", "mac os", "ubuntu desktop",
}

var serverPatterns = []string{
	"server", "centos", "rhel", "red hat", "debian", "suse",
	"oracle linux", "freebsd", "vmware", "esxi", "photon",
}

// ClassifyOSType buckets a guest OS name as desktop ("Dsk"), server ("Srv")
// or "Unknown". A bare "linux" with no distribution hint counts as server.
func ClassifyOSType(osName string) string {
	if strings.TrimSpace(osName) == "" {
		return "Unknown"
	}
	lower := strings.ToLower(osName)
	for _, p := range desktopPatterns {
		if strings.Contains(lower, p) {
			return "Dsk"
		}
	}
	for _, p := range serverPatterns {
		if strings.Contains(lower, p) {
			return "Srv"
		}
	}
	if strings.Contains(lower, "linux") {
		return "Srv"
	}
	return "Unknown"
}
