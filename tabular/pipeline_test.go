package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vmRecords() []Record {
	return []Record{
		{"cluster": "A", "name": "vm1", "os": "Ubuntu 22.04"},
		{"cluster": "B", "name": "vm2", "os": "Windows Server 2019"},
		{"cluster": "A", "name": "vm3", "os": "Debian 12"},
	}
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	records := vmRecords()
	out := Apply(records, Query{})
	// Same slice back: order, contents, and identity all preserved.
	require.Len(t, out, len(records))
	assert.Equal(t, records, out)
	assert.Same(t, &records[0], &out[0])
}

func TestApplyEmptyDiscreteValuesPassEverything(t *testing.T) {
	out := Apply(vmRecords(), Query{Discrete: map[string]string{"cluster": ""}})
	assert.Len(t, out, 3)
}

func TestApplyIsIdempotent(t *testing.T) {
	q := Query{
		Search:       "vm",
		SearchFields: []string{"name"},
		Discrete:     map[string]string{"cluster": "A"},
	}
	once := Apply(vmRecords(), q)
	twice := Apply(once, q)
	assert.Equal(t, once, twice)
}

func TestApplyDiscreteExactMatch(t *testing.T) {
	out := Apply(vmRecords(), Query{Discrete: map[string]string{"cluster": "A"}})
	require.Len(t, out, 2)
	assert.Equal(t, "vm1", out[0].Text("name"))
	assert.Equal(t, "vm3", out[1].Text("name"))
}

func TestApplySearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	q := Query{Search: "WINDOWS", SearchFields: []string{"name", "os"}}
	out := Apply(vmRecords(), q)
	require.Len(t, out, 1)
	assert.Equal(t, "vm2", out[0].Text("name"))
}

func TestApplyRecordMissingFilteredFieldIsExcluded(t *testing.T) {
	records := append(vmRecords(), Record{"name": "vm4"}) // no cluster field
	out := Apply(records, Query{Discrete: map[string]string{"cluster": "A"}})
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, "A", r.Text("cluster"))
	}
}

func TestApplySelectionFilter(t *testing.T) {
	records := vmRecords()
	tree := BuildFacetTree(records, []string{"cluster"})
	tree.ToggleLeaf("B", false)

	out := Apply(records, Query{FacetField: "cluster", Selection: tree.Selection()})
	require.Len(t, out, 2)
	assert.Equal(t, "vm1", out[0].Text("name"))
	assert.Equal(t, "vm3", out[1].Text("name"))
}

func TestApplySelectionUsesUnknownBucketForMissingFacet(t *testing.T) {
	records := append(vmRecords(), Record{"name": "stray"})
	tree := BuildFacetTree(records, []string{"cluster"})

	// Unknown bucket starts selected, so the stray record passes...
	out := Apply(records, Query{FacetField: "cluster", Selection: tree.Selection()})
	assert.Len(t, out, 4)

	// ...and deselecting the bucket excludes exactly that record.
	tree.ToggleLeaf(UnknownBucket("cluster"), false)
	out = Apply(records, Query{FacetField: "cluster", Selection: tree.Selection()})
	assert.Len(t, out, 3)
}

func TestApplyStageOrderNarrowsProgressively(t *testing.T) {
	records := vmRecords()
	tree := BuildFacetTree(records, []string{"cluster"})
	tree.ToggleLeaf("A", false)

	q := Query{
		Search:       "vm",
		SearchFields: []string{"name"},
		Discrete:     map[string]string{"os": "Windows Server 2019"},
		FacetField:   "cluster",
		Selection:    tree.Selection(),
	}
	out := Apply(records, q)
	require.Len(t, out, 1)
	assert.Equal(t, "vm2", out[0].Text("name"))
}
