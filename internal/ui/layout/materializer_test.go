package layout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/ui/layout"
)

func newMaterializer() (*layout.Materializer, *fakeFactory, *fakePanelFactory) {
	factory := newFakeFactory()
	panels := newFakePanelFactory()
	return layout.NewMaterializer(context.Background(), factory, panels), factory, panels
}

func TestMaterialize_NilRoot_ReturnsError(t *testing.T) {
	m, _, _ := newMaterializer()

	widget, err := m.Materialize(context.Background(), nil)

	assert.Nil(t, widget)
	assert.ErrorIs(t, err, layout.ErrNilRoot)
}

func TestMaterialize_SingleGroup(t *testing.T) {
	m, _, panels := newMaterializer()

	root := entity.NewTabGroup("g1",
		&entity.Tab{ID: "A", Title: "Alpha"},
		&entity.Tab{ID: "B", Title: "Beta"},
	)
	root.ActiveTabIndex = 1

	widget, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, widget)

	assert.Equal(t, 1, m.NodeCount())
	assert.Equal(t, widget, m.Lookup("g1"))

	gv, ok := m.GroupFor("g1")
	require.True(t, ok)
	assert.Equal(t, 2, gv.Count())
	assert.Equal(t, 1, gv.ActiveIndex())
	assert.Equal(t, 1, panels.created["A"])
	assert.Equal(t, 1, panels.created["B"])

	// Only the active panel is visible.
	panelA, _ := gv.Panel(0)
	panelB, _ := gv.Panel(1)
	assert.False(t, panelA.IsVisible())
	assert.True(t, panelB.IsVisible())
}

func TestMaterialize_Split(t *testing.T) {
	m, factory, _ := newMaterializer()

	root := entity.NewSplit("s1", entity.AxisVertical,
		entity.NewTabGroup("g1", &entity.Tab{ID: "A"}),
		entity.NewTabGroup("g2", &entity.Tab{ID: "B"}),
	)

	widget, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, widget)

	assert.Equal(t, 3, m.NodeCount())
	require.Len(t, factory.splits, 1)
	split := factory.splits[0]
	assert.Equal(t, layout.OrientationVertical, split.orientation)
	assert.Equal(t, 2, split.ChildCount())
	assert.Equal(t, []float64{0.5, 0.5}, split.GetProportions())
}

func TestMaterialize_StageHost(t *testing.T) {
	m, factory, _ := newMaterializer()

	root := entity.NewStageHost("h1",
		&entity.Stage{ID: "st1", Layout: entity.NewTabGroup("g1", &entity.Tab{ID: "A"})},
		&entity.Stage{ID: "st2", Layout: entity.NewTabGroup("g2", &entity.Tab{ID: "B"})},
	)
	root.ActiveStageIndex = 1

	_, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)

	sv, ok := m.StageHostFor("h1")
	require.True(t, ok)
	assert.Equal(t, 2, sv.Count())
	assert.Equal(t, 1, sv.ActiveIndex())
	require.Len(t, factory.pagers, 1)
	assert.Equal(t, 1, factory.pagers[0].GetVisiblePage())
}

func TestMaterialize_UnchangedSubtreeKeepsWidget(t *testing.T) {
	m, _, panels := newMaterializer()
	ctx := context.Background()

	root := entity.NewSplit("s1", entity.AxisHorizontal,
		entity.NewTabGroup("g1", &entity.Tab{ID: "A"}),
		entity.NewTabGroup("g2", &entity.Tab{ID: "B"}),
	)
	_, err := m.Materialize(ctx, root)
	require.NoError(t, err)
	g1Before := m.Lookup("g1")
	g2Before := m.Lookup("g2")

	next := root.InsertingTab("g2", &entity.Tab{ID: "C"}, 1)
	_, err = m.Materialize(ctx, next)
	require.NoError(t, err)

	assert.Same(t, g1Before, m.Lookup("g1"), "untouched subtree must keep its live widget")
	assert.NotSame(t, g2Before, m.Lookup("g2"), "changed group must be rebuilt")
	assert.Equal(t, 1, panels.created["A"], "panel for untouched tab created once")
	assert.Equal(t, 1, panels.created["B"], "panel reused even when its group is rebuilt")
}

func TestMaterialize_MovedPanelKeepsContentWidget(t *testing.T) {
	m, _, panels := newMaterializer()
	ctx := context.Background()

	root := entity.NewTabGroup("g1", &entity.Tab{ID: "A"}, &entity.Tab{ID: "B"})
	_, err := m.Materialize(ctx, root)
	require.NoError(t, err)
	panelB, ok := m.PanelFor("B")
	require.True(t, ok)

	// Same panels, completely different shape.
	next := entity.NewSplit("s1", entity.AxisHorizontal,
		entity.NewTabGroup("g1", &entity.Tab{ID: "A"}),
		entity.NewTabGroup("g2", &entity.Tab{ID: "B"}),
	)
	_, err = m.Materialize(ctx, next)
	require.NoError(t, err)

	panelBAfter, ok := m.PanelFor("B")
	require.True(t, ok)
	assert.Same(t, panelB, panelBAfter, "moved panel keeps its content widget")
	assert.Equal(t, 1, panels.created["B"])
}

func TestMaterialize_UnresolvedPanelGetsPlaceholder(t *testing.T) {
	m, _, panels := newMaterializer()
	panels.resolve = func(*entity.Tab) layout.Widget { return nil }

	root := entity.NewTabGroup("g1", &entity.Tab{ID: "ghost", Title: "Ghost"})
	_, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)

	placeholder, ok := m.PanelFor("ghost")
	require.True(t, ok)
	assert.True(t, placeholder.HasCssClass("panel-placeholder"))
}

func TestMaterialize_RemovedTabPrunesPanelCache(t *testing.T) {
	m, _, _ := newMaterializer()
	ctx := context.Background()

	root := entity.NewTabGroup("g1", &entity.Tab{ID: "A"}, &entity.Tab{ID: "B"})
	_, err := m.Materialize(ctx, root)
	require.NoError(t, err)

	next, removed := root.RemovingTab("B")
	require.True(t, removed)
	_, err = m.Materialize(ctx, next)
	require.NoError(t, err)

	_, ok := m.PanelFor("B")
	assert.False(t, ok, "panel for removed tab must leave the cache")
	_, ok = m.PanelFor("A")
	assert.True(t, ok)
}

func TestMaterialize_ProportionDragFiresCallback(t *testing.T) {
	m, factory, _ := newMaterializer()

	var gotNode entity.NodeID
	var gotProps []float64
	m.SetOnProportionsChanged(func(nodeID entity.NodeID, proportions []float64) {
		gotNode = nodeID
		gotProps = proportions
	})

	root := entity.NewSplit("s1", entity.AxisHorizontal,
		entity.NewTabGroup("g1", &entity.Tab{ID: "A"}),
		entity.NewTabGroup("g2", &entity.Tab{ID: "B"}),
	)
	_, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)

	factory.splits[0].dragTo([]float64{0.7, 0.3})

	assert.Equal(t, entity.NodeID("s1"), gotNode)
	assert.Equal(t, []float64{0.7, 0.3}, gotProps)
}

func TestMaterialize_TabClickFiresCallback(t *testing.T) {
	m, factory, _ := newMaterializer()

	var gotGroup entity.NodeID
	gotIndex := -1
	m.SetOnTabActivated(func(groupID entity.NodeID, index int) {
		gotGroup = groupID
		gotIndex = index
	})

	root := entity.NewTabGroup("g1", &entity.Tab{ID: "A"}, &entity.Tab{ID: "B"})
	_, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)

	// Second created button is tab B's header.
	require.Len(t, factory.buttons, 2)
	factory.buttons[1].click()

	assert.Equal(t, entity.NodeID("g1"), gotGroup)
	assert.Equal(t, 1, gotIndex)
}

func TestMaterialize_StageCommitFiresCallback(t *testing.T) {
	m, _, _ := newMaterializer()

	var gotHost entity.NodeID
	gotIndex := -1
	m.SetOnStageCommitted(func(hostID entity.NodeID, index int) {
		gotHost = hostID
		gotIndex = index
	})

	root := entity.NewStageHost("h1",
		&entity.Stage{ID: "st1", Layout: entity.NewTabGroup("g1", &entity.Tab{ID: "A"})},
		&entity.Stage{ID: "st2", Layout: entity.NewTabGroup("g2", &entity.Tab{ID: "B"})},
	)
	_, err := m.Materialize(context.Background(), root)
	require.NoError(t, err)

	sv, ok := m.StageHostFor("h1")
	require.True(t, ok)
	sv.IndexCommitted(1)

	assert.Equal(t, entity.NodeID("h1"), gotHost)
	assert.Equal(t, 1, gotIndex)
}

func TestMaterialize_NestedStageHostsReconcileByStageID(t *testing.T) {
	m, _, panels := newMaterializer()
	ctx := context.Background()

	inner := entity.NewStageHost("h2",
		&entity.Stage{ID: "in1", Layout: entity.NewTabGroup("g2", &entity.Tab{ID: "B"})},
	)
	root := entity.NewStageHost("h1",
		&entity.Stage{ID: "st1", Layout: entity.NewTabGroup("g1", &entity.Tab{ID: "A"})},
		&entity.Stage{ID: "st2", Layout: inner},
	)
	_, err := m.Materialize(ctx, root)
	require.NoError(t, err)
	innerBefore := m.Lookup("h2")

	// Change only the first stage's layout.
	next := root.Clone()
	next.Stages[0].Layout = next.Stages[0].Layout.InsertingTab("g1", &entity.Tab{ID: "C"}, 1)
	_, err = m.Materialize(ctx, next)
	require.NoError(t, err)

	assert.Same(t, innerBefore, m.Lookup("h2"), "unchanged nested host must keep its widget")
	assert.Equal(t, 1, panels.created["B"])
}
