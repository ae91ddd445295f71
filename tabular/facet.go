package tabular

import "sort"

// TriState is the visual checked state of a facet node.
type TriState int

const (
	Unchecked TriState = iota
	Partial
	Checked
)

func (t TriState) String() string {
	switch t {
	case Checked:
		return "checked"
	case Partial:
		return "indeterminate"
	}
	return "unchecked"
}

// FacetNode is one node of the facet hierarchy (e.g. datacenter → cluster).
// Leaves correspond 1:1 to distinct values observed at the deepest level.
type FacetNode struct {
	Name     string       `json:"name"`
	Parent   *FacetNode   `json:"-"`
	Children []*FacetNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *FacetNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// SelectionSet holds the currently selected leaf facet names.
type SelectionSet map[string]bool

// Contains reports whether the leaf name is selected.
func (s SelectionSet) Contains(name string) bool {
	return s[name]
}

// FacetTree owns the hierarchy and its tri-state selection. Selection is
// tracked per leaf; branch states are always derived bottom-up from the
// leaves so a parent can never read checked while a child is unchecked.
type FacetTree struct {
	levels []string
	roots  []*FacetNode
	// byName holds every node sharing a display name: the same cluster name
	// can occur under several datacenters, and a name can repeat across
	// levels, so toggles and state reads address all of them at once.
	byName   map[string][]*FacetNode
	selected SelectionSet
}

// UnknownBucket is the synthesized facet name for records missing a value at
// a hierarchy level; such records are bucketed rather than dropped.
func UnknownBucket(level string) string {
	return "Unknown " + level
}

// FacetValue resolves a record's facet value at a level, applying the
// Unknown bucket fallback used both at build time and by the filter
// pipeline, so selection and filtering always agree.
func FacetValue(r Record, level string) string {
	if !r.Has(level) {
		return UnknownBucket(level)
	}
	v := r.Text(level)
	if v == "" {
		return UnknownBucket(level)
	}
	return v
}

// BuildFacetTree groups records by each hierarchy level in turn. On first
// build every leaf starts selected: faceting narrows an already-complete
// view, it never hides data by default.
func BuildFacetTree(records []Record, levels []string) *FacetTree {
	t := &FacetTree{
		levels:   levels,
		byName:   make(map[string][]*FacetNode),
		selected: make(SelectionSet),
	}
	t.build(records)
	for _, leaf := range t.Leaves() {
		t.selected[leaf.Name] = true
	}
	return t
}

func (t *FacetTree) build(records []Record) {
	if len(t.levels) == 0 {
		return
	}
	// Node identity is the full path from the root, not the bare name: the
	// same cluster name under two datacenters must yield two nodes, one per
	// parent, or toggling one datacenter would miss the other's subtree.
	byPath := make(map[string]*FacetNode)
	for _, rec := range records {
		var parent *FacetNode
		path := ""
		for _, level := range t.levels {
			name := FacetValue(rec, level)
			path += "\x00" + name
			node, ok := byPath[path]
			if !ok {
				node = &FacetNode{Name: name, Parent: parent}
				byPath[path] = node
				t.byName[name] = append(t.byName[name], node)
				if parent == nil {
					t.roots = append(t.roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
			}
			parent = node
		}
	}
	sortNodes(t.roots)
	for _, n := range byPath {
		sortNodes(n.Children)
	}
}

func sortNodes(nodes []*FacetNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
}

// Rebuild replaces the hierarchy with one built from the new record
// collection while preserving the user's selection. Selections whose leaf no
// longer exists are pruned; if pruning empties the set entirely, the default
// all-selected state is restored.
func (t *FacetTree) Rebuild(records []Record) {
	prior := t.selected
	t.roots = nil
	t.byName = make(map[string][]*FacetNode)
	t.selected = make(SelectionSet)
	t.build(records)

	kept := 0
	for _, leaf := range t.Leaves() {
		if prior[leaf.Name] {
			t.selected[leaf.Name] = true
			kept++
		}
	}
	if kept == 0 {
		for _, leaf := range t.Leaves() {
			t.selected[leaf.Name] = true
		}
	}
}

// Roots returns the top-level facet nodes in name order.
func (t *FacetTree) Roots() []*FacetNode {
	return t.roots
}

// Leaves returns every leaf node of the tree.
func (t *FacetTree) Leaves() []*FacetNode {
	var out []*FacetNode
	var walk func(n *FacetNode)
	walk = func(n *FacetNode) {
		if n.IsLeaf() {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
	return out
}

// Selection returns the live selection set.
func (t *FacetTree) Selection() SelectionSet {
	return t.selected
}

// IsLeafSelected reports whether the named leaf is in the selection set.
func (t *FacetTree) IsLeafSelected(name string) bool {
	return t.selected.Contains(name)
}

// ToggleLeaf adds or removes one leaf from the selection set. Ancestor
// states need no explicit recompute here: State derives them from the leaves
// on every read, which is what keeps the tri-state invariant unconditional.
func (t *FacetTree) ToggleLeaf(name string, checked bool) {
	leaf := false
	for _, node := range t.byName[name] {
		if node.IsLeaf() {
			leaf = true
			break
		}
	}
	if !leaf {
		return
	}
	if checked {
		t.selected[name] = true
	} else {
		delete(t.selected, name)
	}
}

// ToggleBranch selects or deselects every descendant leaf atomically. A name
// occurring under several parents toggles all of those subtrees: selection is
// tracked per distinct leaf value, so partial toggles of a shared name would
// have no representable state.
func (t *FacetTree) ToggleBranch(name string, checked bool) {
	nodes, ok := t.byName[name]
	if !ok {
		return
	}
	var walk func(n *FacetNode)
	walk = func(n *FacetNode) {
		if n.IsLeaf() {
			if checked {
				t.selected[n.Name] = true
			} else {
				delete(t.selected, n.Name)
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, node := range nodes {
		walk(node)
	}
}

// State reports the tri-state of any node. For a leaf it is Checked or
// Unchecked; for a branch it compares the selected descendant-leaf count to
// the total.
func (t *FacetTree) State(name string) TriState {
	nodes, ok := t.byName[name]
	if !ok {
		return Unchecked
	}
	var selected, total int
	for _, node := range nodes {
		s, tot := t.countLeaves(node)
		selected += s
		total += tot
	}
	switch {
	case total == 0 || selected == 0:
		return Unchecked
	case selected == total:
		return Checked
	}
	return Partial
}

func (t *FacetTree) countLeaves(n *FacetNode) (selected, total int) {
	if n.IsLeaf() {
		if t.selected.Contains(n.Name) {
			return 1, 1
		}
		return 0, 1
	}
	for _, c := range n.Children {
		s, tot := t.countLeaves(c)
		selected += s
		total += tot
	}
	return selected, total
}
