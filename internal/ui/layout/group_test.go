package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/ui/layout"
)

func TestGroupView_AddTabActivatesIt(t *testing.T) {
	gv := layout.NewGroupView(newFakeFactory())

	panelA := newFakeWidget()
	panelB := newFakeWidget()
	assert.Equal(t, 0, gv.AddTab("A", "Alpha", "", panelA))
	assert.Equal(t, 1, gv.AddTab("B", "Beta", "", panelB))

	assert.Equal(t, 2, gv.Count())
	assert.Equal(t, 1, gv.ActiveIndex())
	assert.False(t, panelA.IsVisible())
	assert.True(t, panelB.IsVisible())
}

func TestGroupView_SetActiveTogglesPanelVisibility(t *testing.T) {
	gv := layout.NewGroupView(newFakeFactory())
	panelA := newFakeWidget()
	panelB := newFakeWidget()
	gv.AddTab("A", "Alpha", "", panelA)
	gv.AddTab("B", "Beta", "", panelB)

	require.NoError(t, gv.SetActive(0))
	assert.True(t, panelA.IsVisible())
	assert.False(t, panelB.IsVisible())

	assert.ErrorIs(t, gv.SetActive(5), layout.ErrIndexOutOfBounds)
}

func TestGroupView_RemoveTabAdjustsActiveIndex(t *testing.T) {
	gv := layout.NewGroupView(newFakeFactory())
	gv.AddTab("A", "Alpha", "", newFakeWidget())
	gv.AddTab("B", "Beta", "", newFakeWidget())
	gv.AddTab("C", "Gamma", "", newFakeWidget())
	require.NoError(t, gv.SetActive(2))

	require.NoError(t, gv.RemoveTab(0))
	assert.Equal(t, 1, gv.ActiveIndex())
	id, err := gv.TabID(1)
	require.NoError(t, err)
	assert.Equal(t, entity.TabID("C"), id)
}

func TestGroupView_RemovingLastTabLeavesEmptyGroup(t *testing.T) {
	gv := layout.NewGroupView(newFakeFactory())
	gv.AddTab("A", "Alpha", "", newFakeWidget())

	require.NoError(t, gv.RemoveTab(0))
	assert.Equal(t, 0, gv.Count())
	assert.Equal(t, -1, gv.ActiveIndex())

	assert.ErrorIs(t, gv.RemoveTab(0), layout.ErrGroupEmpty)
}

func TestGroupView_DisplayModeControlsStrip(t *testing.T) {
	factory := newFakeFactory()
	gv := layout.NewGroupView(factory)
	strip := factory.boxes[1] // second box is the strip

	gv.AddTab("A", "Alpha", "", newFakeWidget())
	assert.False(t, strip.IsVisible(), "automatic mode hides the strip for a single tab")

	gv.AddTab("B", "Beta", "", newFakeWidget())
	assert.True(t, strip.IsVisible(), "automatic mode shows the strip for multiple tabs")

	gv.SetDisplayMode(entity.DisplayNever)
	assert.False(t, strip.IsVisible())

	gv.SetDisplayMode(entity.DisplayAlways)
	assert.True(t, strip.IsVisible())
}

func TestGroupView_UpdateTitleAndIcon(t *testing.T) {
	factory := newFakeFactory()
	gv := layout.NewGroupView(factory)
	gv.AddTab("A", "Alpha", "doc-symbolic", newFakeWidget())

	require.NoError(t, gv.UpdateTitle(0, "Renamed"))
	require.NoError(t, gv.UpdateIcon(0, "folder-symbolic"))
	assert.ErrorIs(t, gv.UpdateTitle(3, "x"), layout.ErrIndexOutOfBounds)
}

func TestGroupView_ClickActivationCallback(t *testing.T) {
	factory := newFakeFactory()
	gv := layout.NewGroupView(factory)

	gotIndex := -1
	gv.SetOnActivate(func(index int) { gotIndex = index })

	gv.AddTab("A", "Alpha", "", newFakeWidget())
	gv.AddTab("B", "Beta", "", newFakeWidget())

	factory.buttons[0].click()
	assert.Equal(t, 0, gotIndex)
}
