package entity

// Pure tree transforms. Every operation clones the receiver, mutates the
// clone, and returns it; the receiver is never modified. Operations given an
// unknown ID return the receiver unchanged rather than an error.

// SplitDirection names the edge a new pane is created toward.
type SplitDirection string

const (
	SplitLeft   SplitDirection = "left"
	SplitRight  SplitDirection = "right"
	SplitTop    SplitDirection = "top"
	SplitBottom SplitDirection = "bottom"
)

// Axis returns the split axis implied by the direction.
func (d SplitDirection) Axis() SplitAxis {
	switch d {
	case SplitLeft, SplitRight:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

// leadingEdge reports whether new content goes before the existing node.
func (d SplitDirection) leadingEdge() bool {
	return d == SplitLeft || d == SplitTop
}

// IDGenerator produces unique node IDs for structural operations.
type IDGenerator func() string

// MovingTab returns a tree with the tab moved into the target group at the
// given index (clamped to [0, len]) and made active there. The search for
// both IDs is pre-order; the first match wins. If either ID is not found the
// receiver is returned unchanged. Moves are confined to this tree; moving a
// tab across windows is a caller-side DetachingTab + InsertingTab.
func (n *LayoutNode) MovingTab(tabID TabID, toGroupID NodeID, atIndex int) *LayoutNode {
	if n == nil {
		return nil
	}
	if src, _ := n.FindTab(tabID); src == nil {
		return n
	}
	if n.FindGroup(toGroupID) == nil {
		return n
	}

	tree := n.Clone()
	source, idx := tree.FindTab(tabID)
	tab := source.Tabs[idx]
	source.removeTabAt(idx)

	dest := tree.FindGroup(toGroupID)
	dest.insertTab(tab, atIndex)
	return tree
}

// Splitting returns a tree where the group with groupID is replaced by a
// split holding the existing group and a new singleton group for withTab.
// New content is placed toward the edge named by the direction; the two
// children start at equal proportions. Unknown group IDs are a no-op.
func (n *LayoutNode) Splitting(groupID NodeID, direction SplitDirection, withTab *Tab, idGen IDGenerator) *LayoutNode {
	if n == nil || withTab == nil || idGen == nil {
		return n
	}
	if n.FindGroup(groupID) == nil {
		return n
	}

	tree := n.Clone()
	existing := tree.FindGroup(groupID)

	newGroup := NewTabGroup(NodeID(idGen()), withTab.Clone())
	split := &LayoutNode{
		ID:          NodeID(idGen()),
		Kind:        KindSplit,
		Axis:        direction.Axis(),
		Proportions: []float64{0.5, 0.5},
	}
	if direction.leadingEdge() {
		split.Children = []*LayoutNode{newGroup, existing}
	} else {
		split.Children = []*LayoutNode{existing, newGroup}
	}

	return tree.replacingNode(groupID, split)
}

// RemovingTab returns a normalized tree with the tab removed wherever it is
// found, and reports whether anything changed.
func (n *LayoutNode) RemovingTab(tabID TabID) (*LayoutNode, bool) {
	tree, _, changed := n.DetachingTab(tabID)
	return tree, changed
}

// DetachingTab removes the tab and returns it alongside the normalized tree.
// The returned tab carries its cargo bytes verbatim, so a caller can reinsert
// it into another window's tree without loss. Returns (receiver, nil, false)
// when the tab is not present.
func (n *LayoutNode) DetachingTab(tabID TabID) (*LayoutNode, *Tab, bool) {
	if n == nil {
		return nil, nil, false
	}
	if src, _ := n.FindTab(tabID); src == nil {
		return n, nil, false
	}

	tree := n.Clone()
	group, idx := tree.FindTab(tabID)
	tab := group.Tabs[idx]
	group.removeTabAt(idx)
	return tree.CleanedUp(), tab, true
}

// InsertingTab returns a tree with the tab inserted into the group at the
// given index (clamped) and made active. Unknown group IDs are a no-op.
func (n *LayoutNode) InsertingTab(groupID NodeID, tab *Tab, atIndex int) *LayoutNode {
	if n == nil || tab == nil {
		return n
	}
	if n.FindGroup(groupID) == nil {
		return n
	}

	tree := n.Clone()
	tree.FindGroup(groupID).insertTab(tab.Clone(), atIndex)
	return tree
}

// CleanedUp returns a normalized copy of the tree:
//  1. splits drop children that are empty tab groups
//  2. a split left with one child is replaced by that child (promotion)
//  3. a split left with zero children becomes an empty tab group
//  4. surviving split proportions are renormalized to sum to 1
//
// The pass is bottom-up and idempotent: CleanedUp(CleanedUp(t)) == CleanedUp(t).
func (n *LayoutNode) CleanedUp() *LayoutNode {
	if n == nil {
		return nil
	}
	return cleanupNode(n.Clone())
}

func cleanupNode(node *LayoutNode) *LayoutNode {
	switch node.Kind {
	case KindTabGroup:
		node.clampActiveTab()
		return node

	case KindStageHost:
		for _, stage := range node.Stages {
			if stage.Layout == nil {
				stage.Layout = NewTabGroup(NodeID(string(stage.ID) + "-layout"))
			} else {
				stage.Layout = cleanupNode(stage.Layout)
			}
		}
		node.clampActiveStage()
		return node

	case KindSplit:
		kept := node.Children[:0:0]
		props := node.Proportions[:0:0]
		for i, child := range node.Children {
			cleaned := cleanupNode(child)
			if cleaned.Kind == KindTabGroup && len(cleaned.Tabs) == 0 {
				continue
			}
			kept = append(kept, cleaned)
			if i < len(node.Proportions) {
				props = append(props, node.Proportions[i])
			} else {
				props = append(props, 0)
			}
		}

		switch len(kept) {
		case 0:
			// The split itself degenerates to an empty group. Reuse the
			// split's ID so repeated passes stay stable.
			return NewTabGroup(node.ID)
		case 1:
			return kept[0]
		default:
			node.Children = kept
			node.Proportions = normalizeProportions(props)
			return node
		}
	}
	return node
}

// normalizeProportions rescales values to sum to 1, preserving ratios.
// Degenerate inputs (zero or negative mass) fall back to equal shares.
func normalizeProportions(props []float64) []float64 {
	total := 0.0
	for _, p := range props {
		if p > 0 {
			total += p
		}
	}
	if total <= 0 {
		equal := make([]float64, len(props))
		for i := range equal {
			equal[i] = 1.0 / float64(len(props))
		}
		return equal
	}
	out := make([]float64, len(props))
	for i, p := range props {
		if p < 0 {
			p = 0
		}
		out[i] = p / total
	}
	return out
}

// SettingSplitProportion returns a tree with one child's share of the split
// set to value (clamped to [minShare, 1-minShare]); the remaining children
// absorb the difference proportionally. Unknown IDs or out-of-range child
// indices are a no-op.
func (n *LayoutNode) SettingSplitProportion(splitID NodeID, childIndex int, value, minShare float64) *LayoutNode {
	if n == nil {
		return nil
	}
	target := n.FindNode(splitID)
	if target == nil || target.Kind != KindSplit {
		return n
	}
	if childIndex < 0 || childIndex >= len(target.Proportions) || len(target.Proportions) < 2 {
		return n
	}

	tree := n.Clone()
	split := tree.FindNode(splitID)

	maxShare := 1.0 - minShare
	value = clampFloat64(value, minShare, maxShare)

	rest := 1.0 - split.Proportions[childIndex]
	split.Proportions[childIndex] = value
	remaining := 1.0 - value
	for i := range split.Proportions {
		if i == childIndex {
			continue
		}
		if rest > 0 {
			split.Proportions[i] = split.Proportions[i] / rest * remaining
		} else {
			split.Proportions[i] = remaining / float64(len(split.Proportions)-1)
		}
	}
	return tree
}

// SelectingTab returns a tree with the group's active tab index set (clamped).
func (n *LayoutNode) SelectingTab(groupID NodeID, index int) *LayoutNode {
	if n == nil {
		return nil
	}
	if n.FindGroup(groupID) == nil {
		return n
	}
	tree := n.Clone()
	group := tree.FindGroup(groupID)
	group.ActiveTabIndex = index
	group.clampActiveTab()
	return tree
}

// SelectingStage returns a tree with the host's active stage index set
// (clamped). Unknown host IDs are a no-op.
func (n *LayoutNode) SelectingStage(hostID NodeID, index int) *LayoutNode {
	if n == nil {
		return nil
	}
	target := n.FindNode(hostID)
	if target == nil || target.Kind != KindStageHost {
		return n
	}
	tree := n.Clone()
	host := tree.FindNode(hostID)
	host.ActiveStageIndex = index
	host.clampActiveStage()
	return tree
}

// AddingStage returns a tree with the stage appended to the host and made
// active. Unknown host IDs are a no-op.
func (n *LayoutNode) AddingStage(hostID NodeID, stage *Stage) *LayoutNode {
	if n == nil || stage == nil {
		return n
	}
	target := n.FindNode(hostID)
	if target == nil || target.Kind != KindStageHost {
		return n
	}
	tree := n.Clone()
	host := tree.FindNode(hostID)
	host.Stages = append(host.Stages, &Stage{
		ID:       stage.ID,
		Title:    stage.Title,
		IconName: stage.IconName,
		Layout:   stage.Layout.Clone(),
	})
	host.ActiveStageIndex = len(host.Stages) - 1
	return tree
}

// RemovingStage returns a tree with the stage removed from its host; the
// active index clamps to the remaining stages. Removing the last stage leaves
// the host with a single fresh empty stage rather than none.
func (n *LayoutNode) RemovingStage(stageID StageID, idGen IDGenerator) *LayoutNode {
	if n == nil {
		return nil
	}
	host, idx := n.findStage(stageID)
	if host == nil {
		return n
	}

	tree := n.Clone()
	host, idx = tree.findStage(stageID)
	host.Stages = append(host.Stages[:idx], host.Stages[idx+1:]...)
	if len(host.Stages) == 0 && idGen != nil {
		host.Stages = []*Stage{{
			ID:     StageID(idGen()),
			Layout: NewTabGroup(NodeID(idGen())),
		}}
	}
	host.clampActiveStage()
	return tree
}

// MovingStage returns a tree with the stage repositioned inside its host.
// The destination index clamps; the moved stage stays active if it was.
func (n *LayoutNode) MovingStage(stageID StageID, toIndex int) *LayoutNode {
	if n == nil {
		return nil
	}
	if host, _ := n.findStage(stageID); host == nil {
		return n
	}

	tree := n.Clone()
	host, idx := tree.findStage(stageID)
	wasActive := host.ActiveStageIndex == idx

	stage := host.Stages[idx]
	host.Stages = append(host.Stages[:idx], host.Stages[idx+1:]...)
	toIndex = clampInt(toIndex, 0, len(host.Stages))
	host.Stages = append(host.Stages[:toIndex], append([]*Stage{stage}, host.Stages[toIndex:]...)...)

	if wasActive {
		host.ActiveStageIndex = toIndex
	} else {
		host.clampActiveStage()
	}
	return tree
}

// findStage returns the host containing the stage and the stage's index.
func (n *LayoutNode) findStage(stageID StageID) (*LayoutNode, int) {
	var host *LayoutNode
	index := -1
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind != KindStageHost {
			return true
		}
		for i, stage := range node.Stages {
			if stage.ID == stageID {
				host = node
				index = i
				return false
			}
		}
		return true
	})
	return host, index
}

// replacingNode swaps the node with the given ID for replacement, returning
// the (possibly new) root. Must be called on an already-cloned tree.
func (n *LayoutNode) replacingNode(id NodeID, replacement *LayoutNode) *LayoutNode {
	if n.ID == id {
		return replacement
	}
	n.Walk(func(node *LayoutNode) bool {
		switch node.Kind {
		case KindSplit:
			for i, child := range node.Children {
				if child.ID == id {
					node.Children[i] = replacement
					return false
				}
			}
		case KindStageHost:
			for _, stage := range node.Stages {
				if stage.Layout != nil && stage.Layout.ID == id {
					stage.Layout = replacement
					return false
				}
			}
		case KindTabGroup:
			// Leaf
		}
		return true
	})
	return n
}

// removeTabAt drops the tab at idx, clamping the active index so that the
// selection stays valid: removing at or before the active tab shifts it left.
func (n *LayoutNode) removeTabAt(idx int) {
	n.Tabs = append(n.Tabs[:idx], n.Tabs[idx+1:]...)
	if idx < n.ActiveTabIndex {
		n.ActiveTabIndex--
	}
	n.clampActiveTab()
}

// insertTab places the tab at the clamped index and makes it active.
func (n *LayoutNode) insertTab(tab *Tab, atIndex int) {
	atIndex = clampInt(atIndex, 0, len(n.Tabs))
	n.Tabs = append(n.Tabs[:atIndex], append([]*Tab{tab}, n.Tabs[atIndex:]...)...)
	n.ActiveTabIndex = atIndex
}

func (n *LayoutNode) clampActiveTab() {
	n.ActiveTabIndex = clampInt(n.ActiveTabIndex, 0, len(n.Tabs)-1)
	if len(n.Tabs) == 0 {
		n.ActiveTabIndex = 0
	}
}

func (n *LayoutNode) clampActiveStage() {
	n.ActiveStageIndex = clampInt(n.ActiveStageIndex, 0, len(n.Stages)-1)
	if len(n.Stages) == 0 {
		n.ActiveStageIndex = 0
	}
}

func clampInt(v, minVal, maxVal int) int {
	if maxVal < minVal {
		return minVal
	}
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
