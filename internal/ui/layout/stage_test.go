package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/ui/layout"
)

func TestStageView_AddAndRemoveStages(t *testing.T) {
	factory := newFakeFactory()
	sv := layout.NewStageView(factory)
	pager := factory.pagers[0]

	assert.Equal(t, 0, sv.AddStage("st1", newFakeWidget()))
	assert.Equal(t, 1, sv.AddStage("st2", newFakeWidget()))
	assert.Equal(t, 2, sv.Count())
	assert.Equal(t, 0, sv.ActiveIndex(), "first stage becomes active")
	assert.Equal(t, 2, pager.PageCount())

	require.NoError(t, sv.SetActive(1))
	require.NoError(t, sv.RemoveStage(0))
	assert.Equal(t, 0, sv.ActiveIndex(), "active index shifts with the removal")
	id, err := sv.StageID(0)
	require.NoError(t, err)
	assert.Equal(t, entity.StageID("st2"), id)

	assert.ErrorIs(t, sv.RemoveStage(9), layout.ErrIndexOutOfBounds)
}

func TestStageView_OffsetDrivesPagerScroll(t *testing.T) {
	factory := newFakeFactory()
	sv := layout.NewStageView(factory)
	sv.AddStage("st1", newFakeWidget())
	sv.AddStage("st2", newFakeWidget())
	pager := factory.pagers[0]

	sv.OffsetChanged(-0.35)
	assert.Equal(t, -0.35, pager.GetScrollOffset())
}

func TestStageView_CommitFlipsPageAndNotifies(t *testing.T) {
	factory := newFakeFactory()
	sv := layout.NewStageView(factory)
	sv.AddStage("st1", newFakeWidget())
	sv.AddStage("st2", newFakeWidget())
	pager := factory.pagers[0]

	gotIndex := -1
	sv.SetOnStageCommitted(func(index int) { gotIndex = index })

	sv.IndexCommitted(1)
	assert.Equal(t, 1, pager.GetVisiblePage())
	assert.Equal(t, 1, sv.ActiveIndex())
	assert.Equal(t, 1, gotIndex)

	// Recommitting the same index is not a change.
	gotIndex = -1
	sv.IndexCommitted(1)
	assert.Equal(t, -1, gotIndex)
}

func TestStageView_PageWidthComesFromPager(t *testing.T) {
	factory := newFakeFactory()
	sv := layout.NewStageView(factory)
	factory.pagers[0].pageWidth = 1440

	assert.Equal(t, 1440.0, sv.PageWidth())
}
