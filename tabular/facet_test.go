package tabular

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryRecords() []Record {
	return []Record{
		{"Datacenter": "IST", "Cluster": "IST-PROD", "VM": "vm1"},
		{"Datacenter": "IST", "Cluster": "IST-PROD", "VM": "vm2"},
		{"Datacenter": "IST", "Cluster": "IST-TEST", "VM": "vm3"},
		{"Datacenter": "ANK", "Cluster": "ANK-PROD", "VM": "vm4"},
		{"Datacenter": "ANK", "Cluster": "ANK-DR", "VM": "vm5"},
	}
}

func TestBuildFacetTreeDefaultsAllSelected(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})

	leaves := tree.Leaves()
	require.Len(t, leaves, 4)
	for _, leaf := range leaves {
		assert.True(t, tree.IsLeafSelected(leaf.Name), "leaf %s should start selected", leaf.Name)
	}
	assert.Equal(t, Checked, tree.State("IST"))
	assert.Equal(t, Checked, tree.State("ANK"))
}

func TestFacetTreeUnknownBucket(t *testing.T) {
	records := append(inventoryRecords(), Record{"VM": "stray"})
	tree := BuildFacetTree(records, []string{"Datacenter", "Cluster"})

	require.NotNil(t, tree)
	assert.Equal(t, Checked, tree.State("Unknown Datacenter"))
	assert.True(t, tree.IsLeafSelected("Unknown Cluster"))
}

func TestToggleLeafRecomputesAncestors(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})

	tree.ToggleLeaf("IST-TEST", false)
	assert.Equal(t, Partial, tree.State("IST"))
	assert.Equal(t, Checked, tree.State("ANK"))

	tree.ToggleLeaf("IST-PROD", false)
	assert.Equal(t, Unchecked, tree.State("IST"))

	tree.ToggleLeaf("IST-PROD", true)
	tree.ToggleLeaf("IST-TEST", true)
	assert.Equal(t, Checked, tree.State("IST"))
}

func TestToggleBranchIsAtomic(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})

	tree.ToggleBranch("ANK", false)
	assert.False(t, tree.IsLeafSelected("ANK-PROD"))
	assert.False(t, tree.IsLeafSelected("ANK-DR"))
	assert.Equal(t, Unchecked, tree.State("ANK"))
	assert.Equal(t, Checked, tree.State("IST"))

	tree.ToggleBranch("ANK", true)
	assert.Equal(t, Checked, tree.State("ANK"))
}

// The same cluster name under two datacenters must produce one node per
// parent. Collapsing them onto a single node left the second datacenter
// childless, so toggling it never reached any leaf.
func TestDuplicateClusterNameAcrossDatacenters(t *testing.T) {
	records := []Record{
		{"Datacenter": "IST", "Cluster": "PROD", "VM": "vm1"},
		{"Datacenter": "ANK", "Cluster": "PROD", "VM": "vm2"},
	}
	tree := BuildFacetTree(records, []string{"Datacenter", "Cluster"})

	require.Len(t, tree.Roots(), 2)
	for _, root := range tree.Roots() {
		assert.False(t, root.IsLeaf(), "datacenter %s should carry its PROD child", root.Name)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "PROD", root.Children[0].Name)
	}

	// Selection is per distinct leaf value, so unchecking either datacenter
	// clears PROD everywhere and the filter stage hides both records.
	tree.ToggleBranch("ANK", false)
	assert.False(t, tree.IsLeafSelected("PROD"))
	assert.Equal(t, Unchecked, tree.State("ANK"))
	assert.Equal(t, Unchecked, tree.State("IST"))

	got := Apply(records, Query{FacetField: "Cluster", Selection: tree.Selection()})
	assert.Empty(t, got)

	tree.ToggleBranch("ANK", true)
	assert.Equal(t, Checked, tree.State("IST"))
	got = Apply(records, Query{FacetField: "Cluster", Selection: tree.Selection()})
	assert.Len(t, got, 2)
}

func TestToggleUnknownNameIsNoop(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})
	tree.ToggleLeaf("no-such-leaf", false)
	tree.ToggleBranch("no-such-branch", false)
	assert.Equal(t, Checked, tree.State("IST"))
}

// Randomized toggle sequences must never break the tri-state invariant:
// zero selected leaves reads unchecked, all selected reads checked,
// anything in between reads indeterminate.
func TestTriStateInvariantUnderRandomToggles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var records []Record
	for dc := 0; dc < 3; dc++ {
		for cl := 0; cl < 4; cl++ {
			for vm := 0; vm < 2; vm++ {
				records = append(records, Record{
					"Datacenter": fmt.Sprintf("dc%d", dc),
					"Cluster":    fmt.Sprintf("dc%d-cl%d", dc, cl),
					"VM":         fmt.Sprintf("vm-%d-%d-%d", dc, cl, vm),
				})
			}
		}
	}
	tree := BuildFacetTree(records, []string{"Datacenter", "Cluster"})
	leaves := tree.Leaves()
	branches := tree.Roots()

	checkInvariant := func() {
		for _, b := range branches {
			selected, total := 0, 0
			for _, leaf := range b.Children {
				total++
				if tree.IsLeafSelected(leaf.Name) {
					selected++
				}
			}
			state := tree.State(b.Name)
			switch {
			case selected == 0:
				require.Equal(t, Unchecked, state, "branch %s", b.Name)
			case selected == total:
				require.Equal(t, Checked, state, "branch %s", b.Name)
			default:
				require.Equal(t, Partial, state, "branch %s", b.Name)
			}
		}
	}

	for i := 0; i < 500; i++ {
		if rng.Intn(3) == 0 {
			b := branches[rng.Intn(len(branches))]
			tree.ToggleBranch(b.Name, rng.Intn(2) == 0)
		} else {
			l := leaves[rng.Intn(len(leaves))]
			tree.ToggleLeaf(l.Name, rng.Intn(2) == 0)
		}
		checkInvariant()
	}
}

func TestRebuildPreservesSelection(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})
	tree.ToggleLeaf("IST-TEST", false)

	// Reload with IST-TEST gone and a new cluster appearing.
	reloaded := []Record{
		{"Datacenter": "IST", "Cluster": "IST-PROD", "VM": "vm1"},
		{"Datacenter": "ANK", "Cluster": "ANK-PROD", "VM": "vm4"},
		{"Datacenter": "ANK", "Cluster": "ANK-DR", "VM": "vm5"},
		{"Datacenter": "ANK", "Cluster": "ANK-NEW", "VM": "vm6"},
	}
	tree.Rebuild(reloaded)

	assert.True(t, tree.IsLeafSelected("IST-PROD"))
	assert.True(t, tree.IsLeafSelected("ANK-PROD"))
	// New leaves arrive unselected; the user's narrowing survives reload.
	assert.False(t, tree.IsLeafSelected("ANK-NEW"))
	assert.False(t, tree.IsLeafSelected("IST-TEST"))
}

func TestRebuildResetsWhenEverythingPruned(t *testing.T) {
	tree := BuildFacetTree(inventoryRecords(), []string{"Datacenter", "Cluster"})
	for _, leaf := range tree.Leaves() {
		tree.ToggleLeaf(leaf.Name, false)
	}

	tree.Rebuild(inventoryRecords())
	for _, leaf := range tree.Leaves() {
		assert.True(t, tree.IsLeafSelected(leaf.Name))
	}
}
