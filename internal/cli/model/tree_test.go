package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/stagedock/internal/domain/entity"
)

func testSnapshot() *entity.LayoutSnapshot {
	layout := &entity.Layout{Windows: []*entity.Window{{
		ID:    "w1",
		Frame: entity.Rect{W: 1280, H: 800},
		Root: entity.NewSplit("s1", entity.AxisHorizontal,
			entity.NewTabGroup("g1",
				&entity.Tab{ID: "A", Title: "Editor"},
				&entity.Tab{ID: "B", Title: "Terminal"},
			),
			entity.NewStageHost("h1",
				&entity.Stage{ID: "st1", Title: "Main", Layout: entity.NewTabGroup("g2", &entity.Tab{ID: "C", Title: "Logs"})},
				&entity.Stage{ID: "st2", Title: "Scratch", Layout: entity.NewTabGroup("g3", &entity.Tab{ID: "D"})},
			),
		),
	}}}
	return entity.SnapshotFromLayout(layout)
}

func TestRenderSnapshotTree(t *testing.T) {
	out := RenderSnapshotTree(testSnapshot())

	assert.Contains(t, out, "window w1 (1280x800)")
	assert.Contains(t, out, "split s1 [horizontal]")
	assert.Contains(t, out, "group g1 (2 tabs)")
	assert.Contains(t, out, "* Editor")
	assert.Contains(t, out, "stages h1 (2 stages)")
	assert.Contains(t, out, "* Main")
	assert.Contains(t, out, "Logs")
}

func TestRenderSnapshotTree_FallsBackToIDs(t *testing.T) {
	out := RenderSnapshotTree(testSnapshot())

	// Untitled tabs and stages render their IDs.
	assert.Contains(t, out, "D")
}

func TestRenderSnapshotTree_Empty(t *testing.T) {
	assert.Equal(t, "(empty layout)\n", RenderSnapshotTree(nil))
	assert.Equal(t, "(empty layout)\n", RenderSnapshotTree(&entity.LayoutSnapshot{}))
}
