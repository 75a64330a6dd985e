package entity

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	layout := &Layout{Windows: []*Window{
		{
			ID:           "w1",
			Frame:        Rect{X: 10, Y: 20, W: 800, H: 600},
			IsFullScreen: false,
			Root: NewSplit("root", AxisHorizontal,
				NewTabGroup("g1",
					&Tab{ID: "A", Title: "Alpha", IconName: "doc", Cargo: json.RawMessage(`{"k":1}`)},
					&Tab{ID: "B", Title: "Beta"},
				),
				NewStageHost("h1",
					&Stage{ID: "st1", Title: "One", Layout: NewTabGroup("g2", &Tab{ID: "C", Title: "Gamma"})},
					&Stage{ID: "st2", Title: "Two", Layout: NewTabGroup("g3")},
				),
			),
		},
	}}

	snap := SnapshotFromLayout(layout)
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded LayoutSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := decoded.ToLayout()
	if !LayoutsEqual(layout, restored) {
		t.Fatalf("round trip mismatch\n got: %+v\nwant: %+v", restored, layout)
	}
}

func TestSnapshotJSON_UsesTypeTags(t *testing.T) {
	snap := SnapshotFromNode(NewSplit("s1", AxisVertical,
		NewTabGroup("g1", tab("A")),
		NewTabGroup("g2", tab("B")),
	))

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"type":"split"`, `"axis":"vertical"`, `"type":"tabGroup"`, `"proportions"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("JSON missing %s: %s", want, s)
		}
	}
}

func TestUnmarshal_UnknownNodeTypeFails(t *testing.T) {
	var node NodeSnapshot
	err := json.Unmarshal([]byte(`{"type":"mystery","id":"x"}`), &node)
	if err == nil {
		t.Fatalf("expected error for unknown node type")
	}
}

func TestToNode_RepairsDriftedProportions(t *testing.T) {
	snap := &NodeSnapshot{
		ID:   "s1",
		Type: "split",
		Axis: "horizontal",
		Children: []*NodeSnapshot{
			{ID: "g1", Type: "tabGroup"},
			{ID: "g2", Type: "tabGroup"},
		},
		Proportions: []float64{3.0, 1.0}, // hand-edited, sums to 4
	}

	node := snap.ToNode()
	if got, want := len(node.Proportions), 2; got != want {
		t.Fatalf("proportions = %d, want %d", got, want)
	}
	if got, want := node.Proportions[0], 0.75; !almostEqual(got, want) {
		t.Fatalf("proportion[0] = %v, want %v", got, want)
	}
}

func TestToNode_ClampsActiveIndices(t *testing.T) {
	snap := &NodeSnapshot{
		ID:             "g1",
		Type:           "tabGroup",
		Tabs:           []TabSnapshot{{ID: "A", Title: "A"}},
		ActiveTabIndex: 7,
	}
	if got, want := snap.ToNode().ActiveTabIndex, 0; got != want {
		t.Fatalf("active = %d, want clamp to %d", got, want)
	}

	host := &NodeSnapshot{
		ID:   "h1",
		Type: "stageHost",
		Stages: []StageSnapshot{
			{ID: "st1", Layout: &NodeSnapshot{ID: "g1", Type: "tabGroup"}},
		},
		ActiveStageIndex: -3,
	}
	if got, want := host.ToNode().ActiveStageIndex, 0; got != want {
		t.Fatalf("active stage = %d, want clamp to %d", got, want)
	}
}

func TestDragPayloadJSON(t *testing.T) {
	payload := TabDragPayload{TabID: "t1", SourceGroupID: "g1", Title: "Doc", IconName: "doc"}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"tabId":"t1"`, `"sourceGroupId":"g1"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("payload JSON missing %s: %s", want, data)
		}
	}
}
