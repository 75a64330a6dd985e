package layout

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/logging"
)

// ErrNilRoot is returned when attempting to materialize a nil root node.
var ErrNilRoot = errors.New("root node is nil")

// ErrNodeNotFound is returned when a node lookup fails.
var ErrNodeNotFound = errors.New("node not found")

// Materializer builds widget trees from domain layout trees and keeps
// them in sync across target changes. Subtrees that are structurally
// identical to the previous tree keep their live widgets; only changed
// subtrees are rebuilt. Panel content widgets are cached by tab identity
// so a moved panel survives any reshaping around it.
type Materializer struct {
	factory      WidgetFactory
	panelFactory PanelViewFactory
	logger       zerolog.Logger

	nodeToWidget map[entity.NodeID]Widget
	groups       map[entity.NodeID]*GroupView
	stageHosts   map[entity.NodeID]*StageView
	panelViews   map[entity.TabID]Widget
	lastRoot     *entity.LayoutNode

	onProportionsChanged func(nodeID entity.NodeID, proportions []float64)
	onTabActivated       func(groupID entity.NodeID, index int)
	onStageCommitted     func(hostID entity.NodeID, index int)

	mu sync.RWMutex
}

// prevState holds the widget mappings from the previous materialization,
// consulted while reconciling the next one.
type prevState struct {
	nodeToWidget map[entity.NodeID]Widget
	groups       map[entity.NodeID]*GroupView
	stageHosts   map[entity.NodeID]*StageView
}

// NewMaterializer creates a new materializer.
func NewMaterializer(ctx context.Context, factory WidgetFactory, panelFactory PanelViewFactory) *Materializer {
	log := logging.FromContext(ctx)

	return &Materializer{
		factory:      factory,
		panelFactory: panelFactory,
		logger:       log.With().Str("component", "materializer").Logger(),
		nodeToWidget: make(map[entity.NodeID]Widget),
		groups:       make(map[entity.NodeID]*GroupView),
		stageHosts:   make(map[entity.NodeID]*StageView),
		panelViews:   make(map[entity.TabID]Widget),
	}
}

// SetOnProportionsChanged sets the callback for a user divider drag.
func (m *Materializer) SetOnProportionsChanged(fn func(nodeID entity.NodeID, proportions []float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onProportionsChanged = fn
}

// SetOnTabActivated sets the callback for a tab header click.
func (m *Materializer) SetOnTabActivated(fn func(groupID entity.NodeID, index int)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onTabActivated = fn
}

// SetOnStageCommitted sets the callback for a gesture-committed stage change.
func (m *Materializer) SetOnStageCommitted(fn func(hostID entity.NodeID, index int)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onStageCommitted = fn
}

// Materialize builds or updates the widget tree for the given root.
// Returns the root widget to embed in the window.
func (m *Materializer) Materialize(ctx context.Context, root *entity.LayoutNode) (Widget, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := &prevState{
		nodeToWidget: m.nodeToWidget,
		groups:       m.groups,
		stageHosts:   m.stageHosts,
	}
	m.nodeToWidget = make(map[entity.NodeID]Widget)
	m.groups = make(map[entity.NodeID]*GroupView)
	m.stageHosts = make(map[entity.NodeID]*StageView)

	widget := m.reconcileNode(ctx, prev, m.lastRoot, root)
	m.lastRoot = root.Clone()
	m.prunePanelViews(root)

	m.logger.Debug().
		Int("nodes", len(m.nodeToWidget)).
		Int("panels", len(m.panelViews)).
		Msg("layout materialized")

	return widget, nil
}

// reconcileNode returns the widget for new, reusing the previous widget
// when the subtree is structurally identical to old.
// Must be called with lock held.
func (m *Materializer) reconcileNode(ctx context.Context, prev *prevState, old, node *entity.LayoutNode) Widget {
	if node == nil {
		// Normalization guarantees stage layouts exist; render an empty
		// group if one slipped through.
		return NewGroupView(m.factory).Widget()
	}

	if old != nil && old.ID == node.ID && entity.NodesEqual(old, node) {
		if widget, ok := prev.nodeToWidget[node.ID]; ok {
			m.adoptSubtree(prev, node)
			return widget
		}
	}

	switch node.Kind {
	case entity.KindSplit:
		return m.buildSplit(ctx, prev, old, node)
	case entity.KindStageHost:
		return m.buildStageHost(ctx, prev, old, node)
	default:
		return m.buildGroup(node)
	}
}

// adoptSubtree carries the previous widget mappings for an unchanged
// subtree into the current maps. Must be called with lock held.
func (m *Materializer) adoptSubtree(prev *prevState, node *entity.LayoutNode) {
	node.Walk(func(n *entity.LayoutNode) bool {
		if w, ok := prev.nodeToWidget[n.ID]; ok {
			m.nodeToWidget[n.ID] = w
		}
		if gv, ok := prev.groups[n.ID]; ok {
			m.groups[n.ID] = gv
		}
		if sv, ok := prev.stageHosts[n.ID]; ok {
			m.stageHosts[n.ID] = sv
		}
		return true
	})
}

// buildGroup creates a GroupView for a tab group node. Panel widgets
// come from the cache, so tabs keep their content across rebuilds.
func (m *Materializer) buildGroup(node *entity.LayoutNode) Widget {
	gv := NewGroupView(m.factory)
	gv.SetDisplayMode(node.DisplayMode)

	for _, tab := range node.Tabs {
		panel := m.panelView(tab)
		panel.Unparent()
		gv.AddTab(tab.ID, tab.Title, tab.IconName, panel)
	}
	if active := node.ActiveTab(); active != nil {
		_ = gv.SetActive(node.ActiveTabIndex)
	}

	groupID := node.ID
	gv.SetOnActivate(func(index int) {
		m.mu.RLock()
		cb := m.onTabActivated
		m.mu.RUnlock()
		if cb != nil {
			cb(groupID, index)
		}
	})

	m.groups[node.ID] = gv
	m.nodeToWidget[node.ID] = gv.Widget()
	return gv.Widget()
}

// buildSplit creates a SplitView, reconciling each child against the
// previous child with the same ID.
func (m *Materializer) buildSplit(ctx context.Context, prev *prevState, old, node *entity.LayoutNode) Widget {
	orientation := OrientationHorizontal
	if node.Axis == entity.AxisVertical {
		orientation = OrientationVertical
	}

	sv := NewSplitView(m.factory, orientation)
	for _, child := range node.Children {
		childWidget := m.reconcileNode(ctx, prev, splitChildByID(old, child.ID), child)
		childWidget.Unparent()
		sv.Append(childWidget)
	}
	sv.SetProportions(node.Proportions)

	nodeID := node.ID
	sv.SetOnProportionsChanged(func(proportions []float64) {
		m.mu.RLock()
		cb := m.onProportionsChanged
		m.mu.RUnlock()
		if cb != nil {
			cb(nodeID, proportions)
		}
	})

	m.nodeToWidget[node.ID] = sv.Widget()
	return sv.Widget()
}

// buildStageHost creates a StageView with one page per stage,
// reconciling each stage layout against its previous version.
func (m *Materializer) buildStageHost(ctx context.Context, prev *prevState, old, node *entity.LayoutNode) Widget {
	sv := NewStageView(m.factory)

	for _, stage := range node.Stages {
		content := m.reconcileNode(ctx, prev, stageLayoutByID(old, stage.ID), stage.Layout)
		content.Unparent()
		sv.AddStage(stage.ID, content)
	}
	if sv.Count() > 0 {
		_ = sv.SetActive(clampIndex(node.ActiveStageIndex, sv.Count()))
	}

	hostID := node.ID
	sv.SetOnStageCommitted(func(index int) {
		m.mu.RLock()
		cb := m.onStageCommitted
		m.mu.RUnlock()
		if cb != nil {
			cb(hostID, index)
		}
	})

	m.stageHosts[node.ID] = sv
	m.nodeToWidget[node.ID] = sv.Widget()
	return sv.Widget()
}

// panelView returns the cached content widget for a tab, creating it on
// first sight. An unresolvable panel gets a placeholder that keeps the
// tab's title visible.
// Must be called with lock held.
func (m *Materializer) panelView(tab *entity.Tab) Widget {
	if widget, ok := m.panelViews[tab.ID]; ok {
		return widget
	}

	var widget Widget
	if m.panelFactory != nil {
		widget = m.panelFactory.CreatePanelView(tab)
	}
	if widget == nil {
		box := m.factory.NewBox(OrientationVertical, 0)
		box.AddCssClass("panel-placeholder")
		box.Append(m.factory.NewLabel(tab.Title))
		widget = box

		m.logger.Warn().
			Str("tab_id", string(tab.ID)).
			Msg("panel unresolved, rendering placeholder")
	}

	m.panelViews[tab.ID] = widget
	return widget
}

// prunePanelViews drops cached panels whose tab left the tree.
// Must be called with lock held.
func (m *Materializer) prunePanelViews(root *entity.LayoutNode) {
	present := make(map[entity.TabID]bool)
	for _, tab := range root.AllTabs() {
		present[tab.ID] = true
	}
	for id, widget := range m.panelViews {
		if !present[id] {
			widget.Unparent()
			delete(m.panelViews, id)
		}
	}
}

// Lookup finds the widget associated with a node ID.
// Returns nil if the node was not found or hasn't been materialized.
func (m *Materializer) Lookup(nodeID entity.NodeID) Widget {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.nodeToWidget[nodeID]
}

// GroupFor returns the GroupView for a tab group node ID.
func (m *Materializer) GroupFor(nodeID entity.NodeID) (*GroupView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gv, ok := m.groups[nodeID]
	return gv, ok
}

// StageHostFor returns the StageView for a stage host node ID.
func (m *Materializer) StageHostFor(nodeID entity.NodeID) (*StageView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sv, ok := m.stageHosts[nodeID]
	return sv, ok
}

// PanelFor returns the cached content widget for a tab ID.
func (m *Materializer) PanelFor(tabID entity.TabID) (Widget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	widget, ok := m.panelViews[tabID]
	return widget, ok
}

// NodeCount returns the number of nodes currently tracked.
func (m *Materializer) NodeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.nodeToWidget)
}

func splitChildByID(old *entity.LayoutNode, id entity.NodeID) *entity.LayoutNode {
	if old == nil || !old.IsSplit() {
		return nil
	}
	for _, child := range old.Children {
		if child.ID == id {
			return child
		}
	}
	return nil
}

func stageLayoutByID(old *entity.LayoutNode, id entity.StageID) *entity.LayoutNode {
	if old == nil || !old.IsStageHost() {
		return nil
	}
	for _, stage := range old.Stages {
		if stage.ID == id {
			return stage.Layout
		}
	}
	return nil
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
