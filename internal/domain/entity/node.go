// Package entity contains domain entities representing core layout concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "encoding/json"

// NodeID uniquely identifies a layout node.
type NodeID string

// TabID uniquely identifies a tab across moves and persistence.
type TabID string

// StageID uniquely identifies a stage within a stage host.
type StageID string

// NodeKind discriminates the layout node variants.
type NodeKind int

const (
	KindTabGroup  NodeKind = iota // Leaf: ordered tabs with an active selection
	KindSplit                     // Branch: children share space along an axis
	KindStageHost                 // Branch: swipeable stages, one visible at a time
)

// SplitAxis indicates how a split divides space among its children.
type SplitAxis int

const (
	AxisHorizontal SplitAxis = iota // Children side by side (left to right)
	AxisVertical                    // Children stacked (top to bottom)
)

// DisplayMode controls how a group or host presents its selector chrome.
type DisplayMode int

const (
	DisplayAutomatic DisplayMode = iota // Selector shown only when needed
	DisplayAlways                       // Selector always visible
	DisplayNever                        // Selector hidden
)

// ProportionEpsilon is the tolerance for the split proportion sum invariant.
const ProportionEpsilon = 1e-3

// Tab is the identity-carrying unit of content inside a TabGroup.
// The live panel it represents is resolved by ID through a host-supplied
// provider and is never stored or serialized here.
type Tab struct {
	ID       TabID
	Title    string
	IconName string
	Cargo    json.RawMessage // Opaque host payload, carried verbatim
}

// Stage is an independently-rooted layout subtree inside a StageHost.
type Stage struct {
	ID       StageID
	Title    string
	IconName string
	Layout   *LayoutNode
}

// LayoutNode is the recursive layout tree node. It is a closed sum over three
// variants discriminated by Kind:
//   - KindTabGroup: Tabs + ActiveTabIndex are meaningful
//   - KindSplit: Axis, Children and Proportions are meaningful
//   - KindStageHost: Stages + ActiveStageIndex are meaningful
//
// Consumers switch exhaustively on Kind; fields of other variants are zero.
type LayoutNode struct {
	ID   NodeID
	Kind NodeKind

	// Split fields
	Axis        SplitAxis
	Children    []*LayoutNode
	Proportions []float64

	// TabGroup fields
	Tabs           []*Tab
	ActiveTabIndex int
	DisplayMode    DisplayMode

	// StageHost fields
	Stages           []*Stage
	ActiveStageIndex int
}

// NewTabGroup creates a tab group node. The first tab (if any) is active.
func NewTabGroup(id NodeID, tabs ...*Tab) *LayoutNode {
	return &LayoutNode{
		ID:   id,
		Kind: KindTabGroup,
		Tabs: tabs,
	}
}

// NewSplit creates a split node with equal proportions for the given children.
func NewSplit(id NodeID, axis SplitAxis, children ...*LayoutNode) *LayoutNode {
	props := make([]float64, len(children))
	for i := range props {
		props[i] = 1.0 / float64(len(children))
	}
	return &LayoutNode{
		ID:          id,
		Kind:        KindSplit,
		Axis:        axis,
		Children:    children,
		Proportions: props,
	}
}

// NewStageHost creates a stage host node. The first stage is active.
func NewStageHost(id NodeID, stages ...*Stage) *LayoutNode {
	return &LayoutNode{
		ID:     id,
		Kind:   KindStageHost,
		Stages: stages,
	}
}

// IsTabGroup returns true if this node is a tab group leaf.
func (n *LayoutNode) IsTabGroup() bool { return n.Kind == KindTabGroup }

// IsSplit returns true if this node divides space among children.
func (n *LayoutNode) IsSplit() bool { return n.Kind == KindSplit }

// IsStageHost returns true if this node hosts swipeable stages.
func (n *LayoutNode) IsStageHost() bool { return n.Kind == KindStageHost }

// IsEmpty reports whether the node contributes no content: an empty tab group,
// a split with no children, or a stage host with no stages.
func (n *LayoutNode) IsEmpty() bool {
	switch n.Kind {
	case KindTabGroup:
		return len(n.Tabs) == 0
	case KindSplit:
		return len(n.Children) == 0
	case KindStageHost:
		return len(n.Stages) == 0
	}
	return true
}

// ActiveTab returns the active tab, or nil for an empty group or non-group.
func (n *LayoutNode) ActiveTab() *Tab {
	if n.Kind != KindTabGroup {
		return nil
	}
	if n.ActiveTabIndex < 0 || n.ActiveTabIndex >= len(n.Tabs) {
		return nil
	}
	return n.Tabs[n.ActiveTabIndex]
}

// ActiveStage returns the active stage, or nil for an empty or non-host node.
func (n *LayoutNode) ActiveStage() *Stage {
	if n.Kind != KindStageHost {
		return nil
	}
	if n.ActiveStageIndex < 0 || n.ActiveStageIndex >= len(n.Stages) {
		return nil
	}
	return n.Stages[n.ActiveStageIndex]
}

// Walk traverses the tree in pre-order calling fn for each node, descending
// into split children and stage layouts. Returns early if fn returns false.
func (n *LayoutNode) Walk(fn func(*LayoutNode) bool) {
	n.walk(fn)
}

func (n *LayoutNode) walk(fn func(*LayoutNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	switch n.Kind {
	case KindSplit:
		for _, child := range n.Children {
			if !child.walk(fn) {
				return false
			}
		}
	case KindStageHost:
		for _, stage := range n.Stages {
			if stage.Layout != nil && !stage.Layout.walk(fn) {
				return false
			}
		}
	case KindTabGroup:
		// Leaf
	}
	return true
}

// FindNode returns the first pre-order node with the given ID, or nil.
func (n *LayoutNode) FindNode(id NodeID) *LayoutNode {
	var found *LayoutNode
	n.Walk(func(node *LayoutNode) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindGroup returns the first pre-order tab group with the given ID, or nil.
func (n *LayoutNode) FindGroup(id NodeID) *LayoutNode {
	var found *LayoutNode
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind == KindTabGroup && node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindTab returns the group containing the first pre-order tab with the given
// ID along with the tab's index inside that group. Returns (nil, -1) when the
// tab is not present. If a caller bug produces duplicate IDs, the first
// pre-order match wins.
func (n *LayoutNode) FindTab(id TabID) (*LayoutNode, int) {
	var group *LayoutNode
	index := -1
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind != KindTabGroup {
			return true
		}
		for i, tab := range node.Tabs {
			if tab.ID == id {
				group = node
				index = i
				return false
			}
		}
		return true
	})
	return group, index
}

// AllTabs returns every tab in the tree in pre-order.
func (n *LayoutNode) AllTabs() []*Tab {
	var tabs []*Tab
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind == KindTabGroup {
			tabs = append(tabs, node.Tabs...)
		}
		return true
	})
	return tabs
}

// TabCount returns the number of tabs in the tree.
func (n *LayoutNode) TabCount() int {
	count := 0
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind == KindTabGroup {
			count += len(node.Tabs)
		}
		return true
	})
	return count
}

// GroupCount returns the number of tab group leaves in the tree.
func (n *LayoutNode) GroupCount() int {
	count := 0
	n.Walk(func(node *LayoutNode) bool {
		if node.Kind == KindTabGroup {
			count++
		}
		return true
	})
	return count
}

// Clone returns a deep copy of the tree. Node, tab, and stage identities are
// preserved; tab cargo is copied byte-for-byte.
func (n *LayoutNode) Clone() *LayoutNode {
	if n == nil {
		return nil
	}
	clone := &LayoutNode{
		ID:               n.ID,
		Kind:             n.Kind,
		Axis:             n.Axis,
		ActiveTabIndex:   n.ActiveTabIndex,
		DisplayMode:      n.DisplayMode,
		ActiveStageIndex: n.ActiveStageIndex,
	}
	if n.Children != nil {
		clone.Children = make([]*LayoutNode, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	if n.Proportions != nil {
		clone.Proportions = append([]float64(nil), n.Proportions...)
	}
	if n.Tabs != nil {
		clone.Tabs = make([]*Tab, len(n.Tabs))
		for i, tab := range n.Tabs {
			clone.Tabs[i] = tab.Clone()
		}
	}
	if n.Stages != nil {
		clone.Stages = make([]*Stage, len(n.Stages))
		for i, stage := range n.Stages {
			clone.Stages[i] = &Stage{
				ID:       stage.ID,
				Title:    stage.Title,
				IconName: stage.IconName,
				Layout:   stage.Layout.Clone(),
			}
		}
	}
	return clone
}

// Clone returns a copy of the tab with its cargo bytes duplicated.
func (t *Tab) Clone() *Tab {
	if t == nil {
		return nil
	}
	clone := &Tab{
		ID:       t.ID,
		Title:    t.Title,
		IconName: t.IconName,
	}
	if t.Cargo != nil {
		clone.Cargo = append(json.RawMessage(nil), t.Cargo...)
	}
	return clone
}
