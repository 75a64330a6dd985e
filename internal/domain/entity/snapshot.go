package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// LayoutSnapshotVersion is the current schema version for layout snapshots.
// Increment when making breaking changes to the serialization format.
const LayoutSnapshotVersion = 1

// Node type discriminators in the persisted JSON.
const (
	nodeTypeSplit     = "split"
	nodeTypeTabGroup  = "tabGroup"
	nodeTypeStageHost = "stageHost"
)

// LayoutSnapshot is a complete serialized arrangement of windows.
// Panels themselves are never serialized; tabs carry only identity,
// display hints, and opaque cargo.
type LayoutSnapshot struct {
	Version int              `json:"version"`
	Windows []WindowSnapshot `json:"windows"`
	SavedAt time.Time        `json:"savedAt"`
}

// WindowSnapshot captures one window and its root layout tree.
type WindowSnapshot struct {
	ID           WindowID      `json:"id"`
	Frame        Rect          `json:"frame"`
	IsFullScreen bool          `json:"isFullScreen"`
	RootNode     *NodeSnapshot `json:"rootNode"`
}

// NodeSnapshot is the persisted form of a LayoutNode. On the wire it is a
// tagged union keyed by "type"; only the fields of the active variant are
// emitted.
type NodeSnapshot struct {
	ID   string
	Type string

	// split
	Axis        string
	Children    []*NodeSnapshot
	Proportions []float64

	// tabGroup
	Tabs           []TabSnapshot
	ActiveTabIndex int
	DisplayMode    string

	// stageHost
	Stages           []StageSnapshot
	ActiveStageIndex int
}

// TabSnapshot captures a tab's identity and display hints.
type TabSnapshot struct {
	ID       TabID           `json:"id"`
	Title    string          `json:"title"`
	IconName string          `json:"iconName,omitempty"`
	Cargo    json.RawMessage `json:"cargo,omitempty"`
}

// StageSnapshot captures one stage and its layout subtree.
type StageSnapshot struct {
	ID       StageID       `json:"id"`
	Title    string        `json:"title"`
	IconName string        `json:"iconName,omitempty"`
	Layout   *NodeSnapshot `json:"layout"`
}

type splitJSON struct {
	Type        string          `json:"type"`
	ID          string          `json:"id"`
	Axis        string          `json:"axis"`
	Children    []*NodeSnapshot `json:"children"`
	Proportions []float64       `json:"proportions"`
}

type tabGroupJSON struct {
	Type           string        `json:"type"`
	ID             string        `json:"id"`
	Tabs           []TabSnapshot `json:"tabs"`
	ActiveTabIndex int           `json:"activeTabIndex"`
	DisplayMode    string        `json:"displayMode,omitempty"`
}

type stageHostJSON struct {
	Type             string          `json:"type"`
	ID               string          `json:"id"`
	Stages           []StageSnapshot `json:"stages"`
	ActiveStageIndex int             `json:"activeStageIndex"`
	DisplayMode      string          `json:"displayMode,omitempty"`
}

// MarshalJSON emits the tagged union form.
func (n *NodeSnapshot) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case nodeTypeSplit:
		return json.Marshal(splitJSON{
			Type:        n.Type,
			ID:          n.ID,
			Axis:        n.Axis,
			Children:    n.Children,
			Proportions: n.Proportions,
		})
	case nodeTypeTabGroup:
		return json.Marshal(tabGroupJSON{
			Type:           n.Type,
			ID:             n.ID,
			Tabs:           n.Tabs,
			ActiveTabIndex: n.ActiveTabIndex,
			DisplayMode:    n.DisplayMode,
		})
	case nodeTypeStageHost:
		return json.Marshal(stageHostJSON{
			Type:             n.Type,
			ID:               n.ID,
			Stages:           n.Stages,
			ActiveStageIndex: n.ActiveStageIndex,
			DisplayMode:      n.DisplayMode,
		})
	default:
		return nil, fmt.Errorf("unknown node type: %q", n.Type)
	}
}

// UnmarshalJSON reads the tagged union form.
func (n *NodeSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type             string          `json:"type"`
		ID               string          `json:"id"`
		Axis             string          `json:"axis"`
		Children         []*NodeSnapshot `json:"children"`
		Proportions      []float64       `json:"proportions"`
		Tabs             []TabSnapshot   `json:"tabs"`
		ActiveTabIndex   int             `json:"activeTabIndex"`
		DisplayMode      string          `json:"displayMode"`
		Stages           []StageSnapshot `json:"stages"`
		ActiveStageIndex int             `json:"activeStageIndex"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case nodeTypeSplit, nodeTypeTabGroup, nodeTypeStageHost:
	default:
		return fmt.Errorf("unknown node type: %q", raw.Type)
	}

	n.Type = raw.Type
	n.ID = raw.ID
	n.Axis = raw.Axis
	n.Children = raw.Children
	n.Proportions = raw.Proportions
	n.Tabs = raw.Tabs
	n.ActiveTabIndex = raw.ActiveTabIndex
	n.DisplayMode = raw.DisplayMode
	n.Stages = raw.Stages
	n.ActiveStageIndex = raw.ActiveStageIndex
	return nil
}

// SnapshotFromLayout creates a LayoutSnapshot from a live layout.
func SnapshotFromLayout(l *Layout) *LayoutSnapshot {
	snap := &LayoutSnapshot{
		Version: LayoutSnapshotVersion,
		Windows: []WindowSnapshot{},
		SavedAt: time.Now(),
	}
	if l == nil {
		return snap
	}
	for _, w := range l.Windows {
		snap.Windows = append(snap.Windows, WindowSnapshot{
			ID:           w.ID,
			Frame:        w.Frame,
			IsFullScreen: w.IsFullScreen,
			RootNode:     SnapshotFromNode(w.Root),
		})
	}
	return snap
}

// SnapshotFromNode converts a tree into its persisted form.
func SnapshotFromNode(node *LayoutNode) *NodeSnapshot {
	if node == nil {
		return nil
	}

	snap := &NodeSnapshot{ID: string(node.ID)}
	switch node.Kind {
	case KindSplit:
		snap.Type = nodeTypeSplit
		snap.Axis = axisToString(node.Axis)
		snap.Proportions = append([]float64(nil), node.Proportions...)
		for _, child := range node.Children {
			snap.Children = append(snap.Children, SnapshotFromNode(child))
		}
	case KindTabGroup:
		snap.Type = nodeTypeTabGroup
		snap.ActiveTabIndex = node.ActiveTabIndex
		snap.DisplayMode = displayModeToString(node.DisplayMode)
		snap.Tabs = make([]TabSnapshot, 0, len(node.Tabs))
		for _, tab := range node.Tabs {
			snap.Tabs = append(snap.Tabs, TabSnapshot{
				ID:       tab.ID,
				Title:    tab.Title,
				IconName: tab.IconName,
				Cargo:    tab.Cargo,
			})
		}
	case KindStageHost:
		snap.Type = nodeTypeStageHost
		snap.ActiveStageIndex = node.ActiveStageIndex
		snap.DisplayMode = displayModeToString(node.DisplayMode)
		for _, stage := range node.Stages {
			snap.Stages = append(snap.Stages, StageSnapshot{
				ID:       stage.ID,
				Title:    stage.Title,
				IconName: stage.IconName,
				Layout:   SnapshotFromNode(stage.Layout),
			})
		}
	}
	return snap
}

// ToLayout rebuilds a live layout from the snapshot.
func (s *LayoutSnapshot) ToLayout() *Layout {
	layout := &Layout{}
	if s == nil {
		return layout
	}
	for _, w := range s.Windows {
		layout.Windows = append(layout.Windows, &Window{
			ID:           w.ID,
			Frame:        w.Frame,
			IsFullScreen: w.IsFullScreen,
			Root:         w.RootNode.ToNode(),
		})
	}
	return layout
}

// ToNode rebuilds a layout tree from its persisted form. Out-of-range active
// indices clamp rather than fail.
func (s *NodeSnapshot) ToNode() *LayoutNode {
	if s == nil {
		return nil
	}

	node := &LayoutNode{ID: NodeID(s.ID)}
	switch s.Type {
	case nodeTypeSplit:
		node.Kind = KindSplit
		node.Axis = axisFromString(s.Axis)
		node.Proportions = append([]float64(nil), s.Proportions...)
		for _, child := range s.Children {
			node.Children = append(node.Children, child.ToNode())
		}
		// Repair proportions that drifted or were truncated by hand edits.
		if len(node.Proportions) != len(node.Children) || !proportionsSumValid(node.Proportions) {
			node.Proportions = normalizeProportions(resizeProportions(node.Proportions, len(node.Children)))
		}
	case nodeTypeTabGroup:
		node.Kind = KindTabGroup
		node.DisplayMode = displayModeFromString(s.DisplayMode)
		for _, tab := range s.Tabs {
			node.Tabs = append(node.Tabs, &Tab{
				ID:       tab.ID,
				Title:    tab.Title,
				IconName: tab.IconName,
				Cargo:    tab.Cargo,
			})
		}
		node.ActiveTabIndex = s.ActiveTabIndex
		node.clampActiveTab()
	case nodeTypeStageHost:
		node.Kind = KindStageHost
		node.DisplayMode = displayModeFromString(s.DisplayMode)
		for _, stage := range s.Stages {
			node.Stages = append(node.Stages, &Stage{
				ID:       stage.ID,
				Title:    stage.Title,
				IconName: stage.IconName,
				Layout:   stage.Layout.ToNode(),
			})
		}
		node.ActiveStageIndex = s.ActiveStageIndex
		node.clampActiveStage()
	}
	return node
}

func proportionsSumValid(props []float64) bool {
	if len(props) == 0 {
		return true
	}
	sum := 0.0
	for _, p := range props {
		sum += p
	}
	return sum > 1.0-ProportionEpsilon && sum < 1.0+ProportionEpsilon
}

func resizeProportions(props []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(props) {
			out[i] = props[i]
		} else {
			out[i] = 1.0 / float64(n)
		}
	}
	return out
}

func axisToString(a SplitAxis) string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

func axisFromString(s string) SplitAxis {
	if s == "vertical" {
		return AxisVertical
	}
	return AxisHorizontal
}

func displayModeToString(m DisplayMode) string {
	switch m {
	case DisplayAlways:
		return "always"
	case DisplayNever:
		return "never"
	default:
		return "automatic"
	}
}

func displayModeFromString(s string) DisplayMode {
	switch s {
	case "always":
		return DisplayAlways
	case "never":
		return DisplayNever
	default:
		return DisplayAutomatic
	}
}
