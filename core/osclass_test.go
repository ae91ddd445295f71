package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rvsalt/tabular"
)

func tabularRecordForHelpers() tabular.Record {
	return tabular.Record{
		"float": 16.0, "plain": "8", "turkish": "16.384", "turkishDecimal": "1.234,5",
		"junk": "n/a", "boolTrue": true, "strTrue": "True", "one": "1", "strFalse": "False",
	}
}

func TestClassifyOSType(t *testing.T) {
	cases := []struct {
		osName string
		want   string
	}{
		{"Microsoft Windows 10 (64-bit)", "Dsk"},
		{"Microsoft Windows 11 (64-bit)", "Dsk"},
		{"Microsoft Windows XP Professional (32-bit)", "Dsk"},
		{"Microsoft Windows Server 2019 (64-bit)", "Srv"},
		{"CentOS 7 (64-bit)", "Srv"},
		{"Red Hat Enterprise Linux 8 (64-bit)", "Srv"},
		{"Ubuntu Linux (64-bit)", "Srv"},
		{"Other Linux (64-bit)", "Srv"},
		{"VMware Photon OS (64-bit)", "Srv"},
		{"Other (32-bit)", "Unknown"},
		{"", "Unknown"},
		{"   ", "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyOSType(tc.osName), "osName=%q", tc.osName)
	}
}

func TestNumField(t *testing.T) {
	r := tabularRecordForHelpers()
	assert.Equal(t, 16.0, numField(r, "float"))
	assert.Equal(t, 8.0, numField(r, "plain"))
	assert.Equal(t, 16384.0, numField(r, "turkish"))
	assert.Equal(t, 1234.5, numField(r, "turkishDecimal"))
	assert.Equal(t, 0.0, numField(r, "junk"))
	assert.Equal(t, 0.0, numField(r, "missing"))
}

func TestBoolField(t *testing.T) {
	r := tabularRecordForHelpers()
	assert.True(t, boolField(r, "boolTrue"))
	assert.True(t, boolField(r, "strTrue"))
	assert.True(t, boolField(r, "one"))
	assert.False(t, boolField(r, "strFalse"))
	assert.False(t, boolField(r, "missing"))
}
